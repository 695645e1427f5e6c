// Package secrets implements the Secret Manager described in spec section
// 4.I: typed secret storage bound to an environment scope, with lifecycle
// guarantees (bind publishes derived env entries, unbind removes them
// atomically). The tagged-variant shape is grounded on
// internal/domain/pipeline/validation.go's Type+Config pattern; the
// Manager/Repository naming and "typed retrieval fails on type mismatch"
// convention is grounded on r3e-network-service_layer's
// infrastructure/secrets/manager.go.
package secrets

// Kind enumerates the supported secret variants (spec 3).
type Kind string

const (
	KindPlainText             Kind = "PlainText"
	KindUsernamePassword      Kind = "UsernamePassword"
	KindSshUserPrivateKey     Kind = "SshUserPrivateKey"
	KindAwsCredentials        Kind = "AwsCredentials"
	KindFileCredential        Kind = "FileCredential"
	KindCertificateCredential Kind = "CertificateCredential"
	KindStringCredential      Kind = "StringCredential"
)

// Secret is a tagged variant: only the fields relevant to Kind are
// populated. Concrete credential material never leaves this struct except
// through the derived environment entries Bind publishes.
type Secret struct {
	Kind Kind

	// PlainText
	Text string

	// UsernamePassword
	Username string
	Password string

	// SshUserPrivateKey
	PrivateKey string
	Passphrase string // optional

	// AwsCredentials
	AccessKeyID     string
	SecretAccessKey string

	// FileCredential
	Filename string
	Bytes    []byte

	// CertificateCredential
	KeystorePassword string
	Keystore         []byte

	// StringCredential
	StringSecret string
}

// PlainText constructs a PlainText secret.
func PlainText(text string) Secret { return Secret{Kind: KindPlainText, Text: text} }

// UsernamePassword constructs a UsernamePassword secret.
func UsernamePassword(user, pass string) Secret {
	return Secret{Kind: KindUsernamePassword, Username: user, Password: pass}
}

// SshUserPrivateKey constructs an SshUserPrivateKey secret.
func SshUserPrivateKey(key, passphrase string) Secret {
	return Secret{Kind: KindSshUserPrivateKey, PrivateKey: key, Passphrase: passphrase}
}

// AwsCredentials constructs an AwsCredentials secret.
func AwsCredentials(access, secret string) Secret {
	return Secret{Kind: KindAwsCredentials, AccessKeyID: access, SecretAccessKey: secret}
}

// FileCredential constructs a FileCredential secret.
func FileCredential(filename string, bytes []byte) Secret {
	return Secret{Kind: KindFileCredential, Filename: filename, Bytes: bytes}
}

// CertificateCredential constructs a CertificateCredential secret.
func CertificateCredential(password string, keystore []byte) Secret {
	return Secret{Kind: KindCertificateCredential, KeystorePassword: password, Keystore: keystore}
}

// StringCredential constructs a StringCredential secret.
func StringCredential(secret string) Secret {
	return Secret{Kind: KindStringCredential, StringSecret: secret}
}
