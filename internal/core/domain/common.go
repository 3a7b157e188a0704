package domain

// DateLayout is the wire and map-key format for valuation dates.
const DateLayout = "2006-01-02"
