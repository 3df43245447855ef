package fixed

var (
	Zero   = Point{}
	One    = FromInt(1)
	NegOne = FromInt(-1)

	// CloseEpsilon guards floating-point residue when scaling out of a
	// position: remainders below it are treated as a full close.
	CloseEpsilon = New(1, 6)
)
