package luatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapTable(t *testing.T) {
	for java, lua := range javaToLua {
		assert.Equal(t, lua, Map(java), "mapping %s", java)
	}
}

func TestMap(t *testing.T) {
	tests := []struct {
		java string
		want string
	}{
		{"Map<String, Object>", Table},
		{"Map<String, List<Integer>>", Table},
		{"java.util.Map<?, ?>", Table},
		{"Optional<String>", String},
		{"Optional<Integer>", Number},
		{"Coerced< String >", String},
		{"Object[]", Variadic},
		{"String[]", Variadic},
		{"Object...", Variadic},
		{"List<String>", Any},
		{"MethodResult", Any},
		{"IPeripheral", Any},
		{"", Any},
	}

	for _, tt := range tests {
		t.Run(tt.java, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.java))
		})
	}
}

func TestIsOptional(t *testing.T) {
	assert.True(t, IsOptional("Optional<Integer>"))
	assert.True(t, IsOptional("@Nullable String"))
	assert.True(t, IsOptional("Optional< Map<String, Object> >"))
	assert.False(t, IsOptional("String"))
	assert.False(t, IsOptional("Map<String, Optional>"))
	assert.False(t, IsOptional("int"))
}
