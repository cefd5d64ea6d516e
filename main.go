package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ByLCY/dictsheet/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		stop()
		os.Exit(1)
	}
}
