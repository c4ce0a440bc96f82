package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandTree_InsertAndFind(t *testing.T) {
	tree := NewCommandTree()
	cmd := func(ctx context.Context, cctx *CommandContext) error { return nil }
	require.NoError(t, tree.Insert(NewLiteral("greet").Executes(cmd)))

	child, ok := tree.Root().GetChild("greet")
	require.True(t, ok)
	require.NotNil(t, child.Command())
}

func TestCommandTree_InsertMergesSharedLiteralPrefix(t *testing.T) {
	tree := NewCommandTree()
	require.NoError(t, tree.Insert(NewLiteral("cfg").Then(NewLiteral("get"))))
	require.NoError(t, tree.Insert(NewLiteral("cfg").Then(NewLiteral("set"))))

	cfg, ok := tree.Root().GetChild("cfg")
	require.True(t, ok)
	require.Len(t, cfg.ChildrenOrdered(), 2)
}

func TestCommandTree_InsertRejectsAmbiguousVariables(t *testing.T) {
	tree := NewCommandTree()
	require.NoError(t, tree.Insert(NewLiteral("cfg").Then(NewArgument(NewComponent[string]("a", String)))))
	err := tree.Insert(NewLiteral("cfg").Then(NewArgument(NewComponent[string]("b", String))))
	require.Error(t, err)
}

func TestCommandTree_Parse_SimpleRequired(t *testing.T) {
	tree := NewCommandTree()
	var got int32
	cmd := func(ctx context.Context, cctx *CommandContext) error {
		got = MustGetArgument(cctx, NewCloudKey[int32]("n"))
		return nil
	}
	require.NoError(t, tree.Insert(NewLiteral("add").Then(NewArgument(NewComponent[int32]("n", NewBounded[int32]())).Executes(cmd))))

	in := NewCommandInput("add 5")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.False(t, result.Input.CanRead())
	require.NoError(t, result.Context.command(context.Background(), result.Context))
	require.Equal(t, int32(5), got)
}

func TestCommandTree_Parse_OptionalOmitted(t *testing.T) {
	tree := NewCommandTree()
	cmd := func(ctx context.Context, cctx *CommandContext) error { return nil }
	arg := NewArgument(NewComponent[int32]("n", NewBounded[int32]()).Apply(WithDefault(int32(1)))).Executes(cmd)
	require.NoError(t, tree.Insert(NewLiteral("add").Executes(cmd).Then(arg)))

	in := NewCommandInput("add")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.False(t, result.Input.CanRead())
	require.NotNil(t, result.Context.command)
}

func TestCommandTree_Parse_UnknownLiteralRecordsError(t *testing.T) {
	tree := NewCommandTree()
	require.NoError(t, tree.Insert(NewLiteral("add")))

	in := NewCommandInput("subtract")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.NotEmpty(t, result.Errs)
}

func TestCommandTree_Parse_RequirementBlocksNode(t *testing.T) {
	tree := NewCommandTree()
	admin := NewLiteral("admin").Requires(func(cctx *CommandContext) bool { return false })
	require.NoError(t, tree.Insert(admin))

	in := NewCommandInput("admin")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.True(t, result.Input.CanRead())
	require.Nil(t, result.Context.command)

	err := result.firstErr()
	require.Error(t, err)
	var noPerm *NoPermissionError
	require.ErrorAs(t, err, &noPerm)
	code, ok := errCode(err)
	require.True(t, ok)
	require.Equal(t, CodeNoPermission, code)
}

func TestCommandTree_Parse_SenderTypeMismatchIsFatal(t *testing.T) {
	tree := NewCommandTree()
	node := NewLiteral("admin").Executes(func(ctx context.Context, cctx *CommandContext) error { return nil })
	setNodeSenderType(node, TokenOf[int]())
	require.NoError(t, tree.Insert(node))

	in := NewCommandInput("admin")
	result := tree.Parse(context.Background(), "a-string-sender", in, NewInjectionRegistry())
	require.True(t, result.Input.CanRead())

	err := result.firstErr()
	require.Error(t, err)
	var wrongSender *InvalidCommandSenderError
	require.ErrorAs(t, err, &wrongSender)
	code, ok := errCode(err)
	require.True(t, ok)
	require.Equal(t, CodeInvalidCommandSender, code)
}

func TestCommandTree_Parse_SenderTypeMatchSucceeds(t *testing.T) {
	tree := NewCommandTree()
	var ran bool
	node := NewLiteral("admin").Executes(func(ctx context.Context, cctx *CommandContext) error { ran = true; return nil })
	setNodeSenderType(node, TokenOf[int]())
	require.NoError(t, tree.Insert(node))

	in := NewCommandInput("admin")
	result := tree.Parse(context.Background(), 7, in, NewInjectionRegistry())
	require.False(t, result.Input.CanRead())
	require.NotNil(t, result.Context.command)
	require.NoError(t, result.Context.command(context.Background(), result.Context))
	require.True(t, ran)
}

func TestCommandTree_Parse_Redirect(t *testing.T) {
	tree := NewCommandTree()
	var ran bool
	cmd := func(ctx context.Context, cctx *CommandContext) error { ran = true; return nil }
	target := NewLiteral("target").Executes(cmd)
	require.NoError(t, tree.Insert(target))
	require.NoError(t, tree.Insert(NewLiteral("alias").Redirect(target)))

	in := NewCommandInput("alias")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.False(t, result.Input.CanRead())
	require.NoError(t, result.Context.command(context.Background(), result.Context))
	require.True(t, ran)
}

func TestCommandTree_Parse_TrailingOptionalDefaultReachedAfterRequiredConsumesInput(t *testing.T) {
	tree := NewCommandTree()
	var gotInt int32
	var gotString string
	cmd := func(ctx context.Context, cctx *CommandContext) error {
		gotInt = MustGetArgument(cctx, NewCloudKey[int32]("int"))
		gotString = MustGetArgument(cctx, NewCloudKey[string]("string"))
		return nil
	}
	intArg := NewArgument(NewComponent[int32]("int", NewBoundedRange[int32](1, 100)))
	stringArg := NewArgument(NewComponent[string]("string", String).Apply(WithDefault("potato"))).Executes(cmd)
	intArg.Then(stringArg)
	require.NoError(t, tree.Insert(NewLiteral("test").Then(NewLiteral("literal").Then(intArg))))

	in := NewCommandInput("test literal 10")
	result := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	require.False(t, result.Input.CanRead())
	require.NotNil(t, result.Context.command)
	require.NoError(t, result.Context.command(context.Background(), result.Context))
	require.Equal(t, int32(10), gotInt)
	require.Equal(t, "potato", gotString)
}

func TestCommandTree_CompletionSuggestions_MidToken(t *testing.T) {
	tree := NewCommandTree()
	require.NoError(t, tree.Insert(NewLiteral("greet")))
	require.NoError(t, tree.Insert(NewLiteral("goodbye")))

	in := NewCommandInput("gr")
	parse := tree.Parse(context.Background(), nil, in, NewInjectionRegistry())
	result := &ParseResult{Context: parse.Context, Input: NewCommandInput("gr"), Errs: parse.Errs}
	suggestions, err := tree.CompletionSuggestions(context.Background(), result)
	require.NoError(t, err)

	var texts []string
	for _, s := range suggestions.Items {
		texts = append(texts, s.Text)
	}
	require.Contains(t, texts, "greet")
	require.NotContains(t, texts, "goodbye")
}
