package leetcode

// catalogQuery requests every problem in the public problem set.
const catalogQuery = `
{
  problemsetQuestionList: questionList(categorySlug: "", filters: {}, limit: 10000) {
    questions: data {
      acRate
      difficulty
      frontendQuestionId: questionFrontendId
      paidOnly: isPaidOnly
      title
      titleSlug
    }
  }
}
`

// GraphQLRequest is the POST body sent to the GraphQL endpoint.
type GraphQLRequest struct {
	Query string `json:"query"`
}

// GraphQLError is one entry of a GraphQL "errors" array.
type GraphQLError struct {
	Message string `json:"message"`
}

// CatalogResponse is the response to catalogQuery.
type CatalogResponse struct {
	Data   *CatalogData   `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// CatalogData wraps the aliased question list.
type CatalogData struct {
	ProblemsetQuestionList *QuestionList `json:"problemsetQuestionList"`
}

// QuestionList holds the aliased question array.
type QuestionList struct {
	Questions []Question `json:"questions"`
}

// Question is a single problem as returned by the API.
type Question struct {
	AcRate             float64 `json:"acRate"`
	Difficulty         string  `json:"difficulty"`
	FrontendQuestionID string  `json:"frontendQuestionId"`
	PaidOnly           bool    `json:"paidOnly"`
	Title              string  `json:"title"`
	TitleSlug          string  `json:"titleSlug"`
}
