package exc

const (
	CodeUnknownFatal        = "P0000"
	CodeGrammarParseError   = "P0001"
	CodeUnexpectedCharacter = "P0002"
	CodeUnexpectedEOF       = "P0003"
	CodeUnexpectedToken     = "P0004"
	CodeNoAlternative       = "P0005"
	CodeUnknownSymbol       = "P0006"
	CodeTrailingInput       = "P0007"
)

var (
	defaultNonFatal = map[string]bool{}
)
