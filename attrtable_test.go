package xmlstream

import "testing"

func TestAttrTableAddAndAccess(t *testing.T) {
	tbl := newAttrTable(4)
	if kind := tbl.add([]byte("id"), []byte("1")); kind != KindNone {
		t.Fatalf("add(id) = %v", kind)
	}
	if kind := tbl.add([]byte("class"), []byte("widget")); kind != KindNone {
		t.Fatalf("add(class) = %v", kind)
	}
	if tbl.count() != 2 {
		t.Fatalf("count = %d, want 2", tbl.count())
	}
	if string(tbl.name(0)) != "id" || string(tbl.value(0)) != "1" {
		t.Fatalf("attr 0 = %q=%q", tbl.name(0), tbl.value(0))
	}
	if string(tbl.name(1)) != "class" || string(tbl.value(1)) != "widget" {
		t.Fatalf("attr 1 = %q=%q", tbl.name(1), tbl.value(1))
	}
}

func TestAttrTableOutOfRangeReturnsNil(t *testing.T) {
	tbl := newAttrTable(4)
	tbl.add([]byte("id"), []byte("1"))
	if tbl.name(5) != nil || tbl.value(5) != nil {
		t.Fatal("out-of-range access should return nil")
	}
	if tbl.name(-1) != nil {
		t.Fatal("negative index access should return nil")
	}
}

func TestAttrTableDuplicateNameIsError(t *testing.T) {
	tbl := newAttrTable(4)
	tbl.add([]byte("id"), []byte("1"))
	if kind := tbl.add([]byte("id"), []byte("2")); kind != KindDuplicateAttribute {
		t.Fatalf("second add(id) = %v, want KindDuplicateAttribute", kind)
	}
}

func TestAttrTableTooManyAttributes(t *testing.T) {
	tbl := newAttrTable(1)
	if kind := tbl.add([]byte("a"), []byte("1")); kind != KindNone {
		t.Fatalf("add(a) = %v", kind)
	}
	if kind := tbl.add([]byte("b"), []byte("2")); kind != KindTooManyAttributes {
		t.Fatalf("add(b) = %v, want KindTooManyAttributes", kind)
	}
}

func TestAttrTableResetClearsEntries(t *testing.T) {
	tbl := newAttrTable(4)
	tbl.add([]byte("a"), []byte("1"))
	tbl.reset(4)
	if tbl.count() != 0 {
		t.Fatalf("count after reset = %d, want 0", tbl.count())
	}
}

func TestAttrTableCopiesOutOfCallerSlices(t *testing.T) {
	tbl := newAttrTable(4)
	name := []byte("id")
	value := []byte("1")
	tbl.add(name, value)
	name[0] = 'X'
	value[0] = '9'
	if string(tbl.name(0)) != "id" || string(tbl.value(0)) != "1" {
		t.Fatalf("table copy mutated by caller: name=%q value=%q", tbl.name(0), tbl.value(0))
	}
}
