package httpapi

type encodeRequest struct {
	Value *float64 `json:"value" validate:"required"`
	Cap   *int     `json:"cap"`
}

type rodBeadsJSON struct {
	Upper bool `json:"upper"`
	Lower int  `json:"lower"`
}

type encodeResponse struct {
	Counts   []int          `json:"counts"`
	Value    float64        `json:"value"`
	Dropped  float64        `json:"dropped"`
	Overflow bool           `json:"overflow"`
	Cap      int            `json:"cap"`
	Capacity float64        `json:"capacity"`
	Beads    []rodBeadsJSON `json:"beads"`
}

type decodeRequest struct {
	Counts []int `json:"counts" validate:"len=5"`
}

type decodeResponse struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

type taskRequest struct {
	Mode string  `json:"mode" validate:"required"`
	Seed *uint64 `json:"seed"`
}

type instructionJSON struct {
	Heading string `json:"heading"`
	Hint    string `json:"hint,omitempty"`
}

type taskResponse struct {
	ID             string          `json:"id"`
	Mode           string          `json:"mode"`
	Operand1       float64         `json:"operand1"`
	Operand2       float64         `json:"operand2"`
	ExpectedAnswer float64         `json:"expected_answer"`
	Prompt         string          `json:"prompt"`
	Seed           int64           `json:"seed"`
	SeedSource     string          `json:"seed_source"`
	Inputs         []float64       `json:"inputs"`
	Instruction    instructionJSON `json:"instruction"`
}

type taskRef struct {
	Mode string  `json:"mode" validate:"required"`
	Seed *uint64 `json:"seed" validate:"required"`
}

type verifyRequest struct {
	Answer   *float64 `json:"answer" validate:"required"`
	Expected *float64 `json:"expected" validate:"required_without=Task"`
	Task     *taskRef `json:"task" validate:"required_without=Expected"`
}

type verifyResponse struct {
	Correct   bool    `json:"correct"`
	Expected  float64 `json:"expected"`
	Submitted float64 `json:"submitted"`
	Message   string  `json:"message"`
}

type beadRequest struct {
	Counts []int `json:"counts" validate:"len=5"`
	Rod    *int  `json:"rod" validate:"required"`
	Count  int   `json:"count"`
	Cap    *int  `json:"cap"`
}

type beadResponse struct {
	Counts   []int          `json:"counts"`
	Value    float64        `json:"value"`
	Cap      int            `json:"cap"`
	Capacity float64        `json:"capacity"`
	Beads    []rodBeadsJSON `json:"beads"`
}

type placeValueJSON struct {
	Name      string  `json:"name"`
	LocalName string  `json:"local_name"`
	Magnitude float64 `json:"magnitude"`
	Label     string  `json:"label"`
}

type placeValuesResponse struct {
	Locale      string           `json:"locale"`
	PlaceValues []placeValueJSON `json:"place_values"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
