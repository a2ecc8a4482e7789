package models

import "strings"

// DefaultCategoryPrefix is the type token stripped from radar category labels
const DefaultCategoryPrefix = "skill_"

// Category is one spoke of a radar chart
type Category struct {
	Label string
	Value float64
}

// CategoryVector is an ordered list of categories; order is the spoke order
type CategoryVector []Category

// Labels returns the category labels in spoke order
func (cv CategoryVector) Labels() []string {
	labels := make([]string, len(cv))
	for i, c := range cv {
		labels[i] = c.Label
	}
	return labels
}

// Values returns the category values in spoke order
func (cv CategoryVector) Values() []float64 {
	values := make([]float64, len(cv))
	for i, c := range cv {
		values[i] = c.Value
	}
	return values
}

// LabelFromType derives a display label from a record type such as "skill_front-end"
func LabelFromType(recordType, prefix string) string {
	label := strings.TrimPrefix(recordType, prefix)
	label = strings.NewReplacer("_", " ", "-", " ").Replace(label)
	return strings.Join(strings.Fields(label), " ")
}

// CategoriesFromRecords builds a radar category vector from typed records.
// Repeated types collapse into the first position they appeared at, keeping the largest amount.
func CategoriesFromRecords(records []Record, prefix string) CategoryVector {
	index := make(map[string]int, len(records))
	var cv CategoryVector
	for _, r := range records {
		label := LabelFromType(r.Type, prefix)
		if label == "" {
			continue
		}
		if i, ok := index[label]; ok {
			if r.Amount > cv[i].Value {
				cv[i].Value = r.Amount
			}
			continue
		}
		index[label] = len(cv)
		cv = append(cv, Category{Label: label, Value: r.Amount})
	}
	return cv
}
