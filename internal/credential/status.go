package credential

import "fmt"

// StatusCode is the advisory outcome of a store operation
type StatusCode int

const (
	StatusOK StatusCode = iota
	StatusError
	StatusWarning
)

var statusPrefix = map[StatusCode]string{
	StatusOK:      "S",
	StatusError:   "E",
	StatusWarning: "W",
}

// Status is an advisory record describing the last operation. It never
// replaces the error returned alongside it.
type Status struct {
	Code    StatusCode
	Func    string
	Message string
}

func (s Status) String() string {
	prefix, ok := statusPrefix[s.Code]
	if !ok {
		prefix = "E"
	}
	return fmt.Sprintf("%s: WA.Collect %q status %d: %s", prefix, s.Func, s.Code, s.Message)
}

// OK reports whether the status is a success record
func (s Status) OK() bool {
	return s.Code == StatusOK
}
