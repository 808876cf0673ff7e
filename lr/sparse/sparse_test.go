package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	if v := M.Value(2, 3); v != M.NullValue() {
		t.Errorf("expected empty matrix to return null value, got %d", v)
	}
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(9, 0, -7)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(9, 0); v != -7 {
		t.Errorf("expected M(9,0) = -7, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
}

func TestMatrixOverwrite(t *testing.T) {
	M := NewIntMatrix(4, 4, -1)
	if old := M.Set(1, 1, 5); old != -1 {
		t.Errorf("expected first Set to return null value, got %d", old)
	}
	if old := M.Set(1, 1, 6); old != 5 {
		t.Errorf("expected second Set to return previous value 5, got %d", old)
	}
	if v := M.Value(1, 1); v != 6 {
		t.Errorf("last write should win, M(1,1) = %d", v)
	}
	if M.ValueCount() != 1 {
		t.Errorf("overwrite should not allocate, have %d values", M.ValueCount())
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set out of range to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Set(2, 0, 1)
}
