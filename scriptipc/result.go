package scriptipc

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Result is the outcome of a remote operation as declared by a contract.
// It travels inside a response body, so a failed Result still arrives with
// error code 0.
type Result[T, E any] struct {
	ok    bool
	value T
	err   E
}

// Ok returns a successful Result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, value: v}
}

// Err returns a failed Result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether r succeeded.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// Get returns the success value and whether r succeeded.
func (r Result[T, E]) Get() (T, bool) {
	return r.value, r.ok
}

// Failure returns the failure value and whether r failed.
func (r Result[T, E]) Failure() (E, bool) {
	return r.err, !r.ok
}

func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}

type resultJSON[T, E any] struct {
	Ok  *T `json:"ok,omitempty"`
	Err *E `json:"err,omitempty"`
}

func (r Result[T, E]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(resultJSON[T, E]{Ok: &r.value})
	}
	return json.Marshal(resultJSON[T, E]{Err: &r.err})
}

func (r *Result[T, E]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if okRaw, found := raw["ok"]; found {
		var v T
		if err := json.Unmarshal(okRaw, &v); err != nil {
			return fmt.Errorf("result ok value: %w", err)
		}
		*r = Ok[T, E](v)
		return nil
	}
	errRaw, found := raw["err"]
	if !found {
		return errors.New("result has neither ok nor err")
	}
	var e E
	if err := json.Unmarshal(errRaw, &e); err != nil {
		return fmt.Errorf("result err value: %w", err)
	}
	*r = Err[T](e)
	return nil
}
