package forms

// FormCreateOutput for POST /forms (201 Created)
type FormCreateOutput struct {
	Location string `header:"Location" doc:"URL of the opened form"`
	Body     Form
}

// FormOutput returns the state of a form after a read or mutation.
type FormOutput struct {
	Body Form
}
