package diag

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "full position",
			err:  &Error{Kind: KindArithmetic, Message: "division by zero", Position: Position{File: "a.js", Line: 3, Column: 7}},
			want: "a.js:3:7: arithmetic error: division by zero",
		},
		{
			name: "file only",
			err:  &Error{Kind: KindStructural, Message: "cycle", Position: Position{File: "b.js"}},
			want: "b.js: structural error: cycle",
		},
		{
			name: "no position",
			err:  Errorf(KindArgument, "expected %d arguments", 2),
			want: "argument error: expected 2 arguments",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAt(t *testing.T) {
	pos := Position{File: "x.js", Line: 1, Column: 2}

	if At(nil, pos) != nil {
		t.Error("At(nil) should stay nil")
	}

	plain := Errorf(KindUnsupported, "await")
	located := At(plain, pos)
	var de *Error
	if !errors.As(located, &de) || de.Position != pos {
		t.Fatalf("At() did not attach position: %v", located)
	}
	if plain.Line != 0 {
		t.Error("At() must not mutate original error")
	}

	inner := Position{File: "y.js", Line: 9, Column: 9}
	kept := At(&Error{Kind: KindUnresolved, Message: "x", Position: inner}, pos)
	if !errors.As(kept, &de) || de.Position != inner {
		t.Errorf("At() replaced existing position: %v", kept)
	}

	wrapped := At(fmt.Errorf("boom"), pos)
	if !IsKind(wrapped, KindUnresolved) {
		t.Errorf("foreign error should become unresolved, got %v", wrapped)
	}
}

func TestKindParse(t *testing.T) {
	for _, k := range KindValues() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("ParseKind(bogus) error = %v", err)
	}
}
