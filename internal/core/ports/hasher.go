package ports

// PasswordHasher hashes credentials one-way and checks plaintexts against
// stored hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hashed string) bool
}
