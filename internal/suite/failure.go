package suite

import "fmt"

// FailureDetail is the renderable payload of a failed assertion.
//
// Description is always set. Expected and Actual carry the textual
// rendering of the two sides of a value mismatch; HasValues reports
// whether they are meaningful for this failure.
//
// FailureDetail implements error so test bodies can return it directly.
type FailureDetail struct {
	Description string
	Expected    string
	Actual      string
	HasValues   bool
}

// Error implements the error interface.
func (d *FailureDetail) Error() string {
	if d.HasValues {
		return fmt.Sprintf("%s: %s did not satisfy %s", d.Description, d.Actual, d.Expected)
	}
	return d.Description
}
