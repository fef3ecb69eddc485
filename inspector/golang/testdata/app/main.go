package main

import (
	"fmt"
	"myapp/stack"
)

type label string

func (l label) String() string {
	return string(l)
}

func main() {
	s := stack.New[string]()
	s.Push("first")
	s.Push("second")

	top, _ := s.Pop()
	fmt.Println("Popped:", top, label("done"))

	q := &stack.Queue{}
	q.Push("a", "b")
	fmt.Println(q)
}
