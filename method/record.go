package method

// Record represents a single implementation (overload) of a callable
type Record struct {
	Name      string    // Callable name
	File      string    // Defining file, absolute or relative to the standard library source root
	Line      int       // Defining line
	Module    string    // Owning module (package import path)
	Signature Signature // Parameter types, slot 0 holds the callable's own leading slot
	Arguments []string  // Argument names, consumed by formatters only
}

// Location returns the record defining location
func (r *Record) Location() Location {
	return Location{File: r.File, Line: r.Line}
}
