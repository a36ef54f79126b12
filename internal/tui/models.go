package tui

type View int

const (
	ViewLogin View = iota
	ViewLibrary
	ViewReader
	ViewPaths
	ViewWebinars
	ViewChallenges
	ViewCertificates
	ViewTransactions
)
