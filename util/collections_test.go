package util_test

import (
	"testing"

	"github.com/gruntwork-io/fglob/util"
	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicatesFromList(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		list     []string
		expected []string
	}{
		{[]string{}, []string{}},
		{[]string{"foo"}, []string{"foo"}},
		{[]string{"foo", "bar"}, []string{"foo", "bar"}},
		{[]string{"foo", "bar", "foobar", "bar", "foo"}, []string{"foo", "bar", "foobar"}},
		{[]string{"foo", "foo", "foo"}, []string{"foo"}},
	}

	for _, testCase := range testCases {
		actual := util.RemoveDuplicatesFromList(testCase.list)
		assert.Equal(t, testCase.expected, actual, "For list %v", testCase.list)
	}
}

func TestRemoveDuplicatesByKey(t *testing.T) {
	t.Parallel()

	type item struct {
		key   string
		value int
	}

	list := []item{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}, {"b", 5}}

	actual := util.RemoveDuplicatesByKey(list, func(i item) string { return i.key })
	assert.Equal(t, []item{{"a", 1}, {"b", 2}, {"c", 4}}, actual)
	assert.Len(t, list, 5)
}

func TestRemoveEmptyElements(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, util.RemoveEmptyElements([]string{"", "a", "", "b"}))
	assert.Nil(t, util.RemoveEmptyElements([]string{"", ""}))
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1, 2, 3, 4}, util.Flatten([][]int{{1, 2}, nil, {3}, {4}}))
	assert.Empty(t, util.Flatten[[]int](nil))
}

func TestMergeStringSlices(t *testing.T) {
	t.Parallel()

	a := []string{"x", "y"}
	b := []string{"y", "z"}

	assert.Equal(t, []string{"x", "y", "z"}, util.MergeStringSlices(a, b))
	assert.Equal(t, []string{"x", "y"}, a)
}
