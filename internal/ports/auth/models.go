package auth

// Claims representa la identidad extraída del token: la wallet que firma.
type Claims struct {
	Address string
	ChainID uint64
}
