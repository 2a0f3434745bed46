package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, expr string) int64 {
	t.Helper()
	result, err := evaluateOperand(expr, 0, nil, nil, 8000)
	require.NoError(t, err)
	return result
}

func TestSingleValue(t *testing.T) {
	assert.Equal(t, int64(99), evaluate(t, "99"))
}

func TestSimpleExpression(t *testing.T) {
	assert.Equal(t, int64(127), evaluate(t, "10*12+7"))
}

func TestOperatorPrecedence(t *testing.T) {
	assert.Equal(t, int64(132), evaluate(t, "5+10*12+7"))
}

func TestOperatorPrecedenceLongChain(t *testing.T) {
	assert.Equal(t, int64(144), evaluate(t, "5+10*12+7/2+12*4-1*4*4*2"))
}

func TestParentheses(t *testing.T) {
	assert.Equal(t, int64(1920), evaluate(t, "(5+10)*(12+7)/(2+12)*(4-1)*4*4*2"))
}

func TestNestedParentheses(t *testing.T) {
	assert.Equal(t, int64(4274), evaluate(t, "((1+5)*(1+2*(3+2)))*(12+7)/(2+12)*(4-1)*4*4+1*2"))
	assert.Equal(t, int64(1106), evaluate(t, "((1+5)+(1+2*(3+2)))*(12+7)/(2+12)*(4-1)*4*4+1*2"))
}

func TestSplitTokens(t *testing.T) {
	assert.Len(t, splitTokens("(5+10)*(12+7)/(2+12)*(4-1)*4*4*2"), 29)
	assert.Len(t, splitTokens("((5+10)*(12+7)/(2+12)*(4-1)*4*4*2)"), 31)
	assert.Equal(t, []string{"-", "3"}, splitTokens("-3"))
	assert.Equal(t, []string{"label"}, splitTokens("label"))
}

func TestUnbalancedParenthesis(t *testing.T) {
	_, err := evaluateOperand("(1+2", 0, nil, nil, 8000)
	assert.Error(t, err)

	_, err = evaluateOperand("1+2)", 0, nil, nil, 8000)
	assert.Error(t, err)
}

func TestUnknownIdentifier(t *testing.T) {
	_, err := evaluateOperand("1+bogus", 0, nil, nil, 8000)
	assert.Error(t, err)
}

func TestLabelsAndVariablesInExpressions(t *testing.T) {
	labels := map[string]int{"start": 2}
	variables := map[string]string{"step": "4", "twice": "step*2"}

	// A label inside an expression contributes its PC-relative offset.
	result, err := evaluateOperand("start+1", 5, labels, variables, 8000)
	require.NoError(t, err)
	assert.Equal(t, int64(2+8000-5+1), result)

	// Variables expand transitively.
	result, err = evaluateOperand("twice+1", 0, labels, variables, 8000)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result)
}
