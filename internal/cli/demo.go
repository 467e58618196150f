/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/ovx"
	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/overload"
)

// NewDemoCommand creates the demo command and its subcommands. Routing
// failures are logged through the logger of rootOpts' configuration.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in routing demos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "permute",
		Short: "Call hello(bool, int, float64, string) with arguments in any order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPermuteDemo(cmd.OutOrStdout(), rootOpts.cfg.Log())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "overload",
		Short: "Dispatch fun(...) across priority levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverloadDemo(cmd.OutOrStdout(), rootOpts.cfg.Log())
		},
	})

	return cmd
}

// demoCall is one line of demo output: the Go expression shown and the
// arguments it passes.
type demoCall struct {
	expr string
	args []any
}

func hello(b bool, i int, f float64, s string) string {
	return fmt.Sprintf("hello(%t, %d, %g, %s)", b, i, f, s)
}

func runPermuteDemo(w io.Writer, log *zap.Logger) error {
	if _, err := ovx.DefinePermuted("hello", hello); err != nil {
		return err
	}

	calls := []demoCall{
		{`world(false, 123, "test", 45.67)`, []any{false, 123, "test", 45.67}},
		{`world(123, "test", 45.67, true)`, []any{123, "test", 45.67, true}},
		{`world(123, "test", 45.67, nil)`, []any{123, "test", 45.67, nil}},
		{`world("test", uint(123), nil, float32(45.67))`, []any{"test", uint(123), nil, float32(45.67)}},
	}
	return runCalls(w, log, "hello", calls)
}

// label returns a handler that reports which overload ran.
func label(s string) func(...any) string {
	return func(...any) string { return s }
}

func runOverloadDemo(w io.Writer, log *zap.Logger) error {
	cands := []apis.Candidate{
		overload.MustFunc(0, label("fun(prio<0>, any...)")),
		overload.MustFunc(5, func(int) string { return "fun(prio<5>, int)" }),
		overload.MustFunc(5, func(string) string { return "fun(prio<5>, string)" }),
		overload.MustFunc(10, func(*int) string { return "fun(prio<10>, *int)" }),
		overload.MustFunc(10, func() string { return "fun(prio<10>)" }),
		overload.MustFunc(20, func(int16) string { return "fun(prio<20>, int16)" }),
		overload.MustFunc(20, func(*int16) string { return "fun(prio<20>, *int16)" }),
		overload.MustFunc(20, func(*int64) string { return "fun(prio<20>, *int64)" }),
		overload.MustFunc(30, func(int, int) string { return "fun(prio<30>, int, int)" }),
	}
	if _, err := ovx.DefineOverloaded("fun", cands...); err != nil {
		return err
	}

	var (
		x int
		y int64
		z float32
		t int16
	)
	calls := []demoCall{
		{"do_fun()", nil},
		{"do_fun(1)", []any{1}},
		{`do_fun("")`, []any{""}},
		{"do_fun(&x)", []any{&x}},
		{"do_fun(&y)", []any{&y}},
		{"do_fun(z)", []any{z}},
		{"do_fun(1, 2)", []any{1, 2}},
		{"do_fun(t)", []any{t}},
		{"do_fun(&t)", []any{&t}},
	}
	return runCalls(w, log, "fun", calls)
}

// runCalls routes every call through the global dispatcher. Routing
// failures are printed and logged and do not stop the demo.
func runCalls(w io.Writer, log *zap.Logger, op string, calls []demoCall) error {
	for _, c := range calls {
		out, err := ovx.Call(op, c.args...)
		if err != nil {
			log.Info("demo call failed", zap.String("op", op), zap.String("call", c.expr), zap.Error(err))
			fmt.Fprintf(w, "%s = error: %v\n", c.expr, err)
			continue
		}
		fmt.Fprintf(w, "%s = %v\n", c.expr, out)
	}
	return nil
}
