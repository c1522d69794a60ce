// SPDX-License-Identifier: MIT

package fault

// Sentinels, one per Kind. Match with errors.Is; never mutate them.
var (
	ErrReadInput       = &Error{Kind: ReadInput}
	ErrWriteResults    = &Error{Kind: WriteResults}
	ErrWriteIterations = &Error{Kind: WriteIterations}

	ErrTooManyLines = &Error{Kind: TooManyLines}
	ErrTooFewLines  = &Error{Kind: TooFewLines}

	ErrInvalidGoal             = &Error{Kind: InvalidGoal}
	ErrMissingEqualSign        = &Error{Kind: MissingEqualSign}
	ErrInvalidLHS              = &Error{Kind: InvalidLHS}
	ErrInvalidRHS              = &Error{Kind: InvalidRHS}
	ErrInvalidInitialPointLine = &Error{Kind: InvalidInitialPointLine}
	ErrInitialPointSize        = &Error{Kind: InitialPointSize}
	ErrInvalidToleranceLine    = &Error{Kind: InvalidToleranceLine}
	ErrInvalidTolerance        = &Error{Kind: InvalidTolerance}
	ErrInvalidMaxIterLine      = &Error{Kind: InvalidMaxIterLine}
	ErrInvalidMaxIter          = &Error{Kind: InvalidMaxIter}

	ErrVectorSize       = &Error{Kind: VectorSize}
	ErrUnknownAlgorithm = &Error{Kind: UnknownAlgorithm}

	ErrZeroSize        = &Error{Kind: ZeroSize}
	ErrInitializerSize = &Error{Kind: InitializerSize}
	ErrAddShape        = &Error{Kind: AddShape}
	ErrMulShape        = &Error{Kind: MulShape}
	ErrNonSquare       = &Error{Kind: NonSquare}
	ErrSingular        = &Error{Kind: Singular}
	ErrOutOfRange      = &Error{Kind: OutOfRange}

	ErrLengthMismatch = &Error{Kind: LengthMismatch}

	ErrInvalidConfig = &Error{Kind: InvalidConfig}
	ErrStore         = &Error{Kind: Store}
)
