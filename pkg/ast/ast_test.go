package ast

import (
	"reflect"
	"testing"
)

func sample() *Block {
	return NewBlock("_get_hyp", nil, Names("t"),
		NewBlock("particle", Args(
			Pt(0, 0),
			Fn([]string{"p0"}, CallFn("addVecs", Var("p0"), Vec(0, 0.1))),
		), Names("a", "b"),
			NewBlock("line", Args(Var("a"), Var("b")), nil),
		),
	)
}

func TestClone(t *testing.T) {
	original := sample()
	clone := original.Clone()

	if !reflect.DeepEqual(original, clone) {
		t.Fatal("clone differs from the original")
	}

	// mutate every level of the clone
	clone.Bindings[0] = "x"
	clone.Children[0].Args[0].(*Literal).Value = Point{X: 9}
	lambda := clone.Children[0].Args[1].(*Lambda)
	lambda.Params[0] = "q"
	lambda.Body.(*Call).Args[0].(*Variable).Name = "q"
	clone.Children[0].Children[0].Name = "polyline"

	if !reflect.DeepEqual(original, sample()) {
		t.Error("changing the clone changed the original")
	}
}

func TestClone_Nil(t *testing.T) {
	var b *Block
	if b.Clone() != nil {
		t.Error("nil clones to nil")
	}
	if CloneExpr(nil) != nil {
		t.Error("nil expression clones to nil")
	}
}

func TestNewBlock_NormalisesNil(t *testing.T) {
	b := NewBlock("line", nil, nil)
	if b.Args == nil || b.Bindings == nil || b.Children == nil {
		t.Errorf("expected empty slices, got %+v", b)
	}
	if c := CallFn("f"); c.Args == nil {
		t.Error("CallFn without arguments should have an empty argument list")
	}
	if l := Fn(nil, Num(1)); l.Params == nil {
		t.Error("Fn without parameters should have an empty parameter list")
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		typ        Type
		name       string
		isFunction bool
	}{
		{Scalar, "Scalar", false},
		{Natural, "Natural", false},
		{Vec2, "Vec2", false},
		{Vec2Array, "Vec2Array", false},
		{ScalarArray, "ScalarArray", false},
		{NaturalArray, "NaturalArray", false},
		{VecToVec, "VecToVec", true},
		{Type(99), "Unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.typ.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.typ.String(), tt.name)
			}
			if IsFunction(tt.typ) != tt.isFunction {
				t.Errorf("IsFunction() = %v", !tt.isFunction)
			}
		})
	}
	if len(Types()) != 7 {
		t.Errorf("expected 7 types, got %d", len(Types()))
	}
}

func TestFunctionShape(t *testing.T) {
	rt, ok := ReturnType(VecToVec)
	if !ok || rt != Vec2 {
		t.Errorf("ReturnType(VecToVec) = %v, %v", rt, ok)
	}

	params, ok := ParamTypes(VecToVec)
	if !ok || !reflect.DeepEqual(params, []Type{Vec2}) {
		t.Errorf("ParamTypes(VecToVec) = %v, %v", params, ok)
	}
	params[0] = Scalar
	if again, _ := ParamTypes(VecToVec); again[0] != Vec2 {
		t.Error("ParamTypes must return a copy")
	}

	if _, ok := ReturnType(Scalar); ok {
		t.Error("Scalar is not a function type")
	}
	if _, ok := ParamTypes(Vec2); ok {
		t.Error("Vec2 is not a function type")
	}
}

func TestPointAdd(t *testing.T) {
	if got := (Point{X: 1, Y: 2}).Add(Point{X: 0.5, Y: -3}); got != (Point{X: 1.5, Y: -1}) {
		t.Errorf("Add() = %v", got)
	}
}
