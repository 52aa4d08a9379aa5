package schemy

// Env is one scope in a chain: a symbol table plus an optional link
// to the enclosing scope. Lookup walks outward; writes always land
// in the innermost scope, so shadowing is total for the lifetime of
// the inner scope.
type Env struct {
	Map   map[string]Value
	Outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{
		Map:   make(map[string]Value),
		Outer: outer,
	}
}

func (env *Env) Get(name string) (Value, bool) {
	for e := env; e != nil; e = e.Outer {
		if v, ok := e.Map[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set inserts or overwrites in the current scope. define and set!
// are the same operation; there is no rebinding of outer scopes
// from an inner one.
func (env *Env) Set(name string, v Value) {
	env.Map[name] = v
}
