package edi

// dialect captures everything that differs between the X12 and EDIFACT
// pipelines: envelope segment vocabulary, the 1-based element positions of
// control references and counts, and the trailer count convention. The
// lexer, parser FSM, validator and generator are shared and consult this
// table instead of branching on the standard.
type dialect struct {
	standard Standard

	interchangeHeader  string
	interchangeTrailer string
	groupHeader        string
	groupTrailer       string
	txnHeader          string
	txnTrailer         string

	// Control reference element positions in header/trailer segments.
	icRefHeader   int
	icRefTrailer  int
	icCount       int
	grpRefHeader  int
	grpRefTrailer int
	grpCount      int
	txnRefHeader  int
	txnRefTrailer int
	txnCount      int

	// countIncludesEnvelope is true when the transaction trailer's segment
	// count covers the header and trailer segments themselves. X12's SE01
	// does; so does EDIFACT's UNT01 per ISO 9735.
	countIncludesEnvelope bool
}

var x12Dialect = dialect{
	standard:              X12,
	interchangeHeader:     "ISA",
	interchangeTrailer:    "IEA",
	groupHeader:           "GS",
	groupTrailer:          "GE",
	txnHeader:             "ST",
	txnTrailer:            "SE",
	icRefHeader:           13, // ISA13
	icRefTrailer:          2,  // IEA02
	icCount:               1,  // IEA01: number of functional groups
	grpRefHeader:          6,  // GS06
	grpRefTrailer:         2,  // GE02
	grpCount:              1,  // GE01: number of transaction sets
	txnRefHeader:          2,  // ST02
	txnRefTrailer:         2,  // SE02
	txnCount:              1,  // SE01: segments including ST and SE
	countIncludesEnvelope: true,
}

var edifactDialect = dialect{
	standard:              EDIFACT,
	interchangeHeader:     "UNB",
	interchangeTrailer:    "UNZ",
	groupHeader:           "UNG",
	groupTrailer:          "UNE",
	txnHeader:             "UNH",
	txnTrailer:            "UNT",
	icRefHeader:           5, // UNB05
	icRefTrailer:          2, // UNZ02
	icCount:               1, // UNZ01: groups if grouped, else messages
	grpRefHeader:          5, // UNG05
	grpRefTrailer:         2, // UNE02
	grpCount:              1, // UNE01: number of messages
	txnRefHeader:          1, // UNH01
	txnRefTrailer:         2, // UNT02
	txnCount:              1, // UNT01: segments including UNH and UNT
	countIncludesEnvelope: true,
}

func dialectFor(std Standard) dialect {
	if std == EDIFACT {
		return edifactDialect
	}
	return x12Dialect
}
