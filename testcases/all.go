package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in exported file names.
var All = map[string][]TestCase{
	"point":     pointCases,
	"line":      lineCases,
	"corridor":  corridorCases,
	"fill":      fillCases,
	"hole":      holeCases,
	"precision": precisionCases,
}
