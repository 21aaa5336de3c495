package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/opsdash/inventory-import/pkg/classifier"
)

var args struct {
	Names []string `arg:"positional" help:"Product names to classify; reads stdin when empty"`
}

var log = logrus.New()

func main() {
	arg.MustParse(&args)

	if len(args.Names) > 0 {
		for _, name := range args.Names {
			fmt.Printf("%s\t%s\n", classifier.Classify(name), name)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		name := scanner.Text()
		fmt.Printf("%s\t%s\n", classifier.Classify(name), name)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("unable to read stdin: %v", err)
	}
}
