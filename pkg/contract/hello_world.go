package contract

// Greeting is the only text the hello world example renders.
const Greeting = "Hello, world!"

// HelloWorld is the static hello world example. It has no inputs.
type HelloWorld struct{}

// Text returns Greeting.
func (HelloWorld) Text() string {
	return Greeting
}
