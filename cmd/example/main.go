// Command example wires a small command tree together end to end: a
// required string, an optional bounded integer, and one flag.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/commandkit/commandkit"
)

var nameKey = commandkit.NewCloudKey[string]("name")
var timesKey = commandkit.NewCloudKey[int32]("times")

func main() {
	manager := commandkit.NewManager(
		commandkit.WithLogger(commandkit.NewLogger("text", os.Stderr)),
	)

	loud := commandkit.NewFlagComponent("flags", commandkit.NewFlagParser(
		&commandkit.FlagDefinition{Name: "loud", Aliases: []string{"l"}},
	))

	def := &commandkit.CommandDefinition{
		Literal: "greet",
		Aliases: []string{"hi"},
		Components: []*commandkit.CommandComponent{
			commandkit.NewComponent[string]("name", commandkit.String),
			commandkit.NewComponent[int32]("times", commandkit.NewBoundedRange[int32](1, 10)).
				Apply(commandkit.WithDefault(int32(1))),
		},
		FlagComponent: loud,
		Handler: func(ctx context.Context, cctx *commandkit.CommandContext) error {
			name := commandkit.MustGetArgument(cctx, nameKey)
			times := commandkit.MustGetArgument(cctx, timesKey)
			greeting := fmt.Sprintf("hello, %s", name)
			if _, ok := cctx.Flags()["loud"]; ok {
				greeting += "!"
			}
			for i := int32(0); i < times; i++ {
				fmt.Println(greeting)
			}
			return nil
		},
	}

	if err := manager.Register(def); err != nil {
		fmt.Fprintln(os.Stderr, "register:", err)
		os.Exit(1)
	}
	manager.LockRegistration()

	ctx := context.Background()
	future := manager.Execute(ctx, nil, "greet world 2 --loud")
	if _, err := future.Wait(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "execute:", err)
		os.Exit(1)
	}

	suggestions, err := manager.Suggest(ctx, nil, "gre")
	if err != nil {
		fmt.Fprintln(os.Stderr, "suggest:", err)
		os.Exit(1)
	}
	for _, s := range suggestions.Items {
		fmt.Println("suggestion:", s.Text)
	}
}
