package commandkit

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RegistrationState is the CommandManager's one-way lifecycle
// (spec.md §4.10): REGISTERING permits inserts; LOCKED is permanent.
type RegistrationState uint8

const (
	Registering RegistrationState = iota
	Locked
)

func (s RegistrationState) String() string {
	if s == Locked {
		return "LOCKED"
	}
	return "REGISTERING"
}

// InjectionRegistry resolves named service providers for
// CommandContext.Inject (spec.md §4.8's "inject<T>(Class)"), generalizing
// the teacher's absence of dependency injection using the same
// functional-registry idiom as the rest of the manager.
type InjectionRegistry struct {
	mu        sync.RWMutex
	providers map[string]func() any
}

// NewInjectionRegistry builds an empty InjectionRegistry.
func NewInjectionRegistry() *InjectionRegistry {
	return &InjectionRegistry{providers: map[string]func() any{}}
}

// Register installs provider under name, resolved by Inject[T](cctx, name).
func (r *InjectionRegistry) Register(name string, provider func() any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
}

func injectFrom[T any](r *InjectionRegistry, name string) (T, bool) {
	var zero T
	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()
	if !ok {
		return zero, false
	}
	v := p()
	t, ok := v.(T)
	return t, ok
}

// CommandManager is the façade spec.md §4.11 names: the single owner of the
// tree, the coordinator, the exception controller, and the injection
// registry, generalizing the teacher's Dispatcher plus holomush's Registry
// into one construct with a registration lock.
type CommandManager struct {
	mu          sync.RWMutex
	state       RegistrationState
	tree        *CommandTree
	coordinator *ExecutionCoordinator
	exceptions  *ExceptionController
	injector    *InjectionRegistry
	logger      *slog.Logger
	tracer      trace.Tracer

	descriptions CommandNodeStringMap

	failOnExtraneousInput bool
}

// ManagerOption configures a CommandManager built by NewManager, mirroring
// holomush's DispatcherOption constructor idiom.
type ManagerOption func(*CommandManager)

// WithCoordinator overrides the default synchronous ExecutionCoordinator.
func WithCoordinator(c *ExecutionCoordinator) ManagerOption {
	return func(m *CommandManager) { m.coordinator = c }
}

// WithLogger sets the *slog.Logger the manager logs registration events
// through. The coordinator does not log, and the default
// ExceptionController logs through slog.Default().
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *CommandManager) { m.logger = l }
}

// WithTracer overrides the otel.Tracer used for per-invocation spans.
func WithTracer(t trace.Tracer) ManagerOption {
	return func(m *CommandManager) { m.tracer = t }
}

// WithExceptionController overrides the default empty ExceptionController.
func WithExceptionController(ec *ExceptionController) ManagerOption {
	return func(m *CommandManager) { m.exceptions = ec }
}

// WithInjectionRegistry overrides the default empty InjectionRegistry.
func WithInjectionRegistry(r *InjectionRegistry) ManagerOption {
	return func(m *CommandManager) { m.injector = r }
}

// WithFailOnExtraneousInput sets whether trailing unparsed input after a
// structurally complete command is an error (spec.md §6, default true).
func WithFailOnExtraneousInput(fail bool) ManagerOption {
	return func(m *CommandManager) { m.failOnExtraneousInput = fail }
}

// NewManager builds a CommandManager in the REGISTERING state.
func NewManager(opts ...ManagerOption) *CommandManager {
	m := &CommandManager{
		tree:                  NewCommandTree(),
		exceptions:            NewExceptionController(),
		injector:              NewInjectionRegistry(),
		logger:                slog.Default(),
		tracer:                otel.Tracer("commandkit"),
		descriptions:          NewCommandNodeStringMap(),
		failOnExtraneousInput: true,
	}
	m.coordinator = NewSyncCoordinator(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the manager's current registration state.
func (m *CommandManager) State() RegistrationState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LockRegistration transitions REGISTERING -> LOCKED. Calling it again is a
// no-op; the transition never reverses.
func (m *CommandManager) LockRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Locked {
		return
	}
	m.state = Locked
	m.logger.Info("command registration locked")
}

// Tree exposes the underlying CommandTree, for a help/usage formatter or
// admin tool (SPEC_FULL.md §3). The returned tree is not a copy: Insert on
// it mutates the manager's tree without the registration lock or state check.
func (m *CommandManager) Tree() *CommandTree { return m.tree }

// Injector exposes the manager's InjectionRegistry so handlers or hosts can
// register providers before locking.
func (m *CommandManager) Injector() *InjectionRegistry { return m.injector }

// RegisterExceptionHandler installs h for kind on the manager's
// ExceptionController.
func (m *CommandManager) RegisterExceptionHandler(kind string, h ExceptionHandler) {
	m.exceptions.Register(kind, h)
}

// RegisterPreprocessor appends p to the coordinator's preprocessor chain.
func (m *CommandManager) RegisterPreprocessor(p Preprocessor) {
	m.coordinator.preprocessors = append(m.coordinator.preprocessors, p)
}

// RegisterPostprocessor appends p to the coordinator's postprocessor chain.
func (m *CommandManager) RegisterPostprocessor(p Postprocessor) {
	m.coordinator.postprocessors = append(m.coordinator.postprocessors, p)
}

// Register validates def's structural invariants (I1-I4) and inserts the
// command it describes into the tree, failing with RegistrationLocked once
// the manager has locked, AmbiguousNode on a T2/T3 tree conflict, or
// InvalidCommand on a structural violation (spec.md §6).
func (m *CommandManager) Register(def *CommandDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Locked {
		return ErrRegistrationLocked
	}
	root, err := buildCommandChain(def)
	if err != nil {
		return err
	}
	if err := m.tree.Insert(root); err != nil {
		return err
	}
	m.describeLiteral(def.Literal, def.Description)
	for _, alias := range def.Aliases {
		aliasDef := *def
		aliasDef.Literal = alias
		aliasDef.Aliases = nil
		aliasRoot, err := buildCommandChain(&aliasDef)
		if err != nil {
			return err
		}
		if err := m.tree.Insert(aliasRoot); err != nil {
			return err
		}
		m.describeLiteral(alias, def.Description)
	}
	m.logger.Debug("command registered", "name", def.Literal, "aliases", def.Aliases)
	return nil
}

// describeLiteral records desc against the actual tree node reached by
// literal, looked up post-insert since Insert may have merged the
// just-built chain into an already-present node rather than grafting it
// in as-is.
func (m *CommandManager) describeLiteral(literal, desc string) {
	if desc == "" {
		return
	}
	if node, ok := m.tree.Root().GetChild(literal); ok {
		m.descriptions.Put(node, desc)
	}
}

// Describe returns the description a CommandDefinition registered for
// node via its Description field, if any (SPEC_FULL.md §3 help supplement).
func (m *CommandManager) Describe(node CommandNode) (string, bool) {
	return m.descriptions.Get(node)
}

// FindNode looks up the node reached by following path (literal/argument
// names) from the root, for introspection (SPEC_FULL.md §3's
// Manager.FindNode).
func (m *CommandManager) FindNode(path ...string) (CommandNode, bool) {
	var node CommandNode = m.tree.Root()
	for _, p := range path {
		child, ok := node.GetChild(p)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Execute runs sender's raw input through the coordinator: preprocessors,
// tree parse, handler, postprocessors (spec.md §6 "Manager.execute").
func (m *CommandManager) Execute(ctx context.Context, sender any, raw string) *Future[struct{}] {
	return m.coordinator.Coordinate(ctx, sender, raw)
}

// Suggest computes completion suggestions for sender's partial raw input.
func (m *CommandManager) Suggest(ctx context.Context, sender any, raw string) (Suggestions, error) {
	ctx, span := m.tracer.Start(ctx, "commandkit.suggest")
	defer span.End()

	in := NewCommandInput(raw)
	parse := m.tree.Parse(ctx, sender, in, m.injector)
	result := &ParseResult{Context: parse.Context, Input: NewCommandInput(raw), Errs: parse.Errs}
	suggestions, err := m.tree.CompletionSuggestions(ctx, result)
	recordSpanErr(span, err)
	return suggestions, err
}
