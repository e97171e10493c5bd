package config_test

import (
	"math"
	"strings"
	"testing"

	"github.com/plus3/orrery/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func parse(t *testing.T, src string) *config.File {
	t.Helper()
	f, err := config.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return f
}

const earthMoon = `
name = "earth-moon"
seed = 7

[[bodies]]
name = "moon"
parent = "earth"
orbit_radius = 30.0
angular_velocity = -0.02

[[bodies]]
name = "sun"
radius = 109.0

[[bodies]]
name = "earth"
parent = "sun"
orbit_radius = 234.0
angular_velocity = -0.005
rotation_speed = 0.055

[[cameras]]
name = "earth-pov"
target = "earth"
offset = [0.0, 0.0, -60.0]
`

func TestValidateOrdersParentsFirst(t *testing.T) {
	sys, err := config.Validate(parse(t, earthMoon))
	require.NoError(t, err)

	var names []string
	for _, b := range sys.Bodies {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"sun", "earth", "moon"}, names)
	assert.Equal(t, "earth-moon", sys.Name)
	assert.Equal(t, uint64(7), sys.Seed)

	earth, ok := sys.Body("earth")
	require.True(t, ok)
	assert.Equal(t, 234.0, earth.OrbitRadius)
	assert.Equal(t, -0.005, earth.AngularVelocity)
	assert.Equal(t, 0.055, earth.RotationSpeed)
}

func TestValidateCameraDefaults(t *testing.T) {
	sys, err := config.Validate(parse(t, earthMoon))
	require.NoError(t, err)
	require.Len(t, sys.Cameras, 1)

	cam := sys.Cameras[0]
	assert.Equal(t, "earth", cam.Target)
	assert.Equal(t, config.DefaultSmoothing, cam.Smoothing)
	assert.Equal(t, [3]float64{0, 0, -60}, cam.Offset)
	assert.Equal(t, [3]float64{}, cam.Position)
	assert.Equal(t, config.DefaultFov, cam.Fov)
	assert.Equal(t, config.DefaultNear, cam.Near)
	assert.Equal(t, config.DefaultFar, cam.Far)
}

func TestValidateAddsMainCamera(t *testing.T) {
	sys, err := config.Validate(&config.File{
		Bodies: []config.BodyFile{{Name: "sun"}},
	})
	require.NoError(t, err)
	require.Len(t, sys.Cameras, 1)
	assert.Equal(t, "main", sys.Cameras[0].Name)
	assert.Equal(t, config.DefaultCameraPosition, sys.Cameras[0].Position)
	assert.Empty(t, sys.Cameras[0].Target)
}

func TestValidateScalingLaw(t *testing.T) {
	sys, err := config.Validate(&config.File{
		Scale: &config.Scale{Unit: 468, BaseAngularVelocity: -0.005},
		Bodies: []config.BodyFile{
			{Name: "sun"},
			{Name: "earth", Parent: "sun", OrbitAU: ptr(1.0), Period: ptr(1.0)},
			{Name: "mars", Parent: "sun", OrbitAU: ptr(1.5), Period: ptr(2.0)},
			{Name: "moon", Parent: "earth", OrbitRadius: ptr(30.0), AngularVelocity: ptr(-0.02)},
		},
	})
	require.NoError(t, err)

	mars, _ := sys.Body("mars")
	assert.InDelta(t, 702.0, mars.OrbitRadius, 1e-9)
	assert.InDelta(t, -0.0025, mars.AngularVelocity, 1e-12)

	moon, _ := sys.Body("moon")
	assert.Equal(t, 30.0, moon.OrbitRadius)
	assert.Equal(t, -0.02, moon.AngularVelocity)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		file config.File
		want error
	}{
		{
			name: "no bodies",
			file: config.File{},
			want: config.ErrNoBodies,
		},
		{
			name: "empty name",
			file: config.File{Bodies: []config.BodyFile{{Name: ""}}},
			want: config.ErrEmptyName,
		},
		{
			name: "duplicate body",
			file: config.File{Bodies: []config.BodyFile{{Name: "sun"}, {Name: "sun"}}},
			want: config.ErrDuplicateName,
		},
		{
			name: "unknown parent",
			file: config.File{Bodies: []config.BodyFile{{Name: "moon", Parent: "earth"}}},
			want: config.ErrUnknownParent,
		},
		{
			name: "self parent",
			file: config.File{Bodies: []config.BodyFile{{Name: "sun", Parent: "sun"}}},
			want: config.ErrCycle,
		},
		{
			name: "two body cycle",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "a", Parent: "b"},
				{Name: "b", Parent: "a"},
			}},
			want: config.ErrCycle,
		},
		{
			name: "nan radius",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "earth", Parent: "sun", OrbitRadius: ptr(math.NaN())},
			}},
			want: config.ErrNonFinite,
		},
		{
			name: "infinite velocity",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "earth", Parent: "sun", AngularVelocity: ptr(math.Inf(-1))},
			}},
			want: config.ErrNonFinite,
		},
		{
			name: "infinite rotation",
			file: config.File{Bodies: []config.BodyFile{{Name: "sun", RotationSpeed: math.Inf(1)}}},
			want: config.ErrNonFinite,
		},
		{
			name: "negative orbit",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "earth", Parent: "sun", OrbitRadius: ptr(-1.0)},
			}},
			want: config.ErrNegativeRadius,
		},
		{
			name: "both radius forms",
			file: config.File{
				Scale: &config.Scale{Unit: 1},
				Bodies: []config.BodyFile{
					{Name: "sun"},
					{Name: "earth", Parent: "sun", OrbitRadius: ptr(1.0), OrbitAU: ptr(1.0)},
				},
			},
			want: config.ErrConflict,
		},
		{
			name: "au without scale",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "earth", Parent: "sun", OrbitAU: ptr(1.0)},
			}},
			want: config.ErrMissingScale,
		},
		{
			name: "zero period",
			file: config.File{
				Scale: &config.Scale{Unit: 1, BaseAngularVelocity: -0.005},
				Bodies: []config.BodyFile{
					{Name: "sun"},
					{Name: "earth", Parent: "sun", Period: ptr(0.0)},
				},
			},
			want: config.ErrZeroPeriod,
		},
		{
			name: "anchor on child",
			file: config.File{Bodies: []config.BodyFile{
				{Name: "sun"},
				{Name: "earth", Parent: "sun", Anchor: &[3]float64{1, 2, 3}},
			}},
			want: config.ErrConflict,
		},
		{
			name: "fixed and random theta",
			file: config.File{Bodies: []config.BodyFile{{Name: "sun", InitialTheta: ptr(1.0), RandomTheta: true}}},
			want: config.ErrConflict,
		},
		{
			name: "unknown camera target",
			file: config.File{
				Bodies:  []config.BodyFile{{Name: "sun"}},
				Cameras: []config.CameraFile{{Name: "pov", Target: "earth"}},
			},
			want: config.ErrUnknownTarget,
		},
		{
			name: "zero smoothing",
			file: config.File{
				Bodies:  []config.BodyFile{{Name: "sun"}},
				Cameras: []config.CameraFile{{Name: "pov", Target: "sun", Smoothing: ptr(0.0)}},
			},
			want: config.ErrSmoothing,
		},
		{
			name: "smoothing above one",
			file: config.File{
				Bodies:  []config.BodyFile{{Name: "sun"}},
				Cameras: []config.CameraFile{{Name: "pov", Target: "sun", Smoothing: ptr(1.5)}},
			},
			want: config.ErrSmoothing,
		},
		{
			name: "duplicate camera",
			file: config.File{
				Bodies:  []config.BodyFile{{Name: "sun"}},
				Cameras: []config.CameraFile{{Name: "main"}, {Name: "main"}},
			},
			want: config.ErrDuplicateName,
		},
		{
			name: "near beyond far",
			file: config.File{
				Bodies:  []config.BodyFile{{Name: "sun"}},
				Cameras: []config.CameraFile{{Name: "main", Near: ptr(10.0), Far: ptr(1.0)}},
			},
			want: config.ErrProjection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := config.Validate(&tt.file)
			assert.Nil(t, sys)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	_, err := config.Validate(&config.File{
		Bodies: []config.BodyFile{
			{Name: "sun"},
			{Name: "earth", Parent: "sun", OrbitRadius: ptr(math.NaN())},
			{Name: "moon", Parent: "pluto"},
		},
		Cameras: []config.CameraFile{{Name: "pov", Target: "moon", Smoothing: ptr(2.0)}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNonFinite)
	assert.ErrorIs(t, err, config.ErrUnknownParent)
	assert.ErrorIs(t, err, config.ErrSmoothing)
}

func TestValidateZeroRadiusIsLegal(t *testing.T) {
	sys, err := config.Validate(&config.File{
		Bodies: []config.BodyFile{
			{Name: "sun"},
			{Name: "twin", Parent: "sun", OrbitRadius: ptr(0.0), AngularVelocity: ptr(0.1)},
		},
	})
	require.NoError(t, err)

	twin, _ := sys.Body("twin")
	assert.Zero(t, twin.OrbitRadius)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse(strings.NewReader(`
[[bodies]]
name = "sun"
mass = 1.0
`))
	assert.Error(t, err)
}
