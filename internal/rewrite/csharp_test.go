package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSharpNotEqualsOperator(t *testing.T) {
	got, ok := CSharpNotEqualsOperator("    public static bool operator ==(Point a, Point b) => a.X == b.X;")
	assert.True(t, ok)
	assert.Equal(t, "    public static bool operator !=(Point a, Point b) => !(a == b);", got)

	_, ok = CSharpNotEqualsOperator("public int Add(int a) => a;")
	assert.False(t, ok)
}

func TestCSharpExpressionBody(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		ok    bool
	}{
		{"single assignment", []string{"{", "    X = x;", "}"}, " => X = x;", true},
		{"tuple", []string{"{", "  X = x;", "  Y = y;"}, " => (X, Y) = (x, y);", true},
		{"return", []string{"{", "  return a + b;"}, " => a + b;", true},
		{"return comparison", []string{"  return a == b;"}, " => a == b;", true},
		{"nothing", []string{"{", "}"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CSharpExpressionBody(tt.lines)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSharpBlockBody(t *testing.T) {
	got, ok := CSharpBlockBody("  public int Sum() => a + b;", "    ", "\n")
	assert.True(t, ok)
	assert.Equal(t, "  public int Sum() {\n      return a + b;\n  }", got)

	_, ok = CSharpBlockBody("  public int Sum() {", "    ", "\n")
	assert.False(t, ok)
}

func TestCSharpTupleBlock(t *testing.T) {
	got, ok := CSharpTupleBlock("(X, Y) = (x, y);", "  ", "\n")
	assert.True(t, ok)
	assert.Equal(t, "{\n  X = x;\n  Y = y;\n}", got)

	_, ok = CSharpTupleBlock("(X, Y) = (x);", "  ", "\n")
	assert.False(t, ok)
}

func TestCSharpDelegate(t *testing.T) {
	tests := []struct {
		name   string
		target string
		method string
		want   string
		ok     bool
	}{
		{"func", "    var square", "static int Square(int x)", "    Func<int, int> square = Square;", true},
		{"action", "  log", "  public static void Log(string msg)", "  Action<string> log = Log;", true},
		{"no params", "run", "static void Run()", "Action run = Run;", true},
		{"name from method", "   ", "static bool Ready()", "   Func<bool> ready = Ready;", true},
		{"not static", "x", "int Square(int x)", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CSharpDelegate(tt.target, tt.method)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackageReference(t *testing.T) {
	got, ok := PackageReference("dotnet add package Newtonsoft.Json --version 13.0.3\n")
	assert.True(t, ok)
	assert.Equal(t, `<PackageReference Include="Newtonsoft.Json" Version="13.0.3" />`, got)

	_, ok = PackageReference("npm install x")
	assert.False(t, ok)
}

func TestGoMethodStubs(t *testing.T) {
	got, ok := GoMethodStubs("func (s *Store) Get(k string) string {", []string{"  Put(k, v string)", "", "Len() int"}, "\n")
	assert.True(t, ok)
	assert.Equal(t, "func (s *Store) Put(k, v string) {\n\n}\n\nfunc (s *Store) Len() int {\n\n}", got)

	_, ok = GoMethodStubs("type Store struct{}", []string{"Len() int"}, "\n")
	assert.False(t, ok)
}
