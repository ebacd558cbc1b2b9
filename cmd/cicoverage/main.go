// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cicoverage computes the coverage of binomial confidence
// interval methods.
//
// The single and pair subcommands compute coverage exactly by summing
// over the binomial outcomes of each proportion; random estimates it
// from random samples. Every run setting can come from a YAML file
// (--config), a CICOV_* environment variable or a flag.
//
// Example:
//
//	cicoverage single --method wilson --sample-size1 50 --from 0.01 --to 0.99 --step 0.01
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
