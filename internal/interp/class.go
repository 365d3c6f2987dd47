package interp

// class is a Lox class object: a name, an optional superclass, and its
// own methods. Method lookup walks the superclass chain linearly, per
// spec.md §3.
type class struct {
	name       string
	superclass *class
	methods    map[string]*function
}

func newClass(name string, superclass *class, methods map[string]*function) *class {
	return &class{name: name, superclass: superclass, methods: methods}
}

func (c *class) findMethod(name string) (*function, bool) {
	if fn, ok := c.methods[name]; ok {
		return fn, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

// Arity equals the init method's arity, or 0 if there is none.
func (c *class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a fresh instance and binds-and-calls init if present.
func (c *class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	inst := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *class) String() string {
	return c.name
}
