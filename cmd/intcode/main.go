package main

import (
	"fmt"
	"log"
)

func main() {
	result, err := NewApp(parseArgs()).Run()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result)
}
