// Command orrery animates a configurable solar system.
package main

func main() {
	Execute()
}
