package method

import "fmt"

// Collect gathers the implementations of callable matching class. Union classes are collected
// per alternative and concatenated in alternative order, duplicates are kept.
func Collect(src Source, callable string, class Class) ([]*Record, error) {
	if class.IsAll() {
		records, err := src.All(callable)
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s: %w", callable, err)
		}
		return records, nil
	}
	var result []*Record
	for _, shape := range class.Expand() {
		records, err := src.Matching(callable, shape)
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s%v: %w", callable, shape, err)
		}
		result = append(result, records...)
	}
	if result == nil {
		result = []*Record{}
	}
	return result, nil
}
