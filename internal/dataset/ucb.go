package dataset

import "github.com/huangsam/ctexpand/schema"

// UCBAdmissionsName is the registry name of the UC Berkeley admissions table.
const UCBAdmissionsName = "ucb-admissions"

// ucbAdmissions is the 1973 UC Berkeley graduate admissions table for the six
// largest departments, cross-classified by admission decision, gender and
// department. Record order varies Admit fastest, then Gender, then Dept.
var ucbAdmissions = schema.Summarized{
	Name:       UCBAdmissionsName,
	Attributes: []string{"Admit", "Gender", "Dept"},
	Records: []schema.Record{
		{Values: []string{"Admitted", "Male", "A"}, Freq: 512},
		{Values: []string{"Rejected", "Male", "A"}, Freq: 313},
		{Values: []string{"Admitted", "Female", "A"}, Freq: 89},
		{Values: []string{"Rejected", "Female", "A"}, Freq: 19},
		{Values: []string{"Admitted", "Male", "B"}, Freq: 353},
		{Values: []string{"Rejected", "Male", "B"}, Freq: 207},
		{Values: []string{"Admitted", "Female", "B"}, Freq: 17},
		{Values: []string{"Rejected", "Female", "B"}, Freq: 8},
		{Values: []string{"Admitted", "Male", "C"}, Freq: 120},
		{Values: []string{"Rejected", "Male", "C"}, Freq: 205},
		{Values: []string{"Admitted", "Female", "C"}, Freq: 202},
		{Values: []string{"Rejected", "Female", "C"}, Freq: 391},
		{Values: []string{"Admitted", "Male", "D"}, Freq: 138},
		{Values: []string{"Rejected", "Male", "D"}, Freq: 279},
		{Values: []string{"Admitted", "Female", "D"}, Freq: 131},
		{Values: []string{"Rejected", "Female", "D"}, Freq: 244},
		{Values: []string{"Admitted", "Male", "E"}, Freq: 53},
		{Values: []string{"Rejected", "Male", "E"}, Freq: 138},
		{Values: []string{"Admitted", "Female", "E"}, Freq: 94},
		{Values: []string{"Rejected", "Female", "E"}, Freq: 299},
		{Values: []string{"Admitted", "Male", "F"}, Freq: 22},
		{Values: []string{"Rejected", "Male", "F"}, Freq: 351},
		{Values: []string{"Admitted", "Female", "F"}, Freq: 24},
		{Values: []string{"Rejected", "Female", "F"}, Freq: 317},
	},
}
