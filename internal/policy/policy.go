// Package policy isolates the credential checks gating uploads and
// deletes. The current implementation compares fixed strings, which is a
// UI gate and nothing more; swapping in real authentication later should
// only require a new AccessPolicy implementation, not UI changes.
package policy

import "crypto/subtle"

type AccessPolicy interface {
	AuthorizesUpload(credential string) bool
	AuthorizesDelete(credential string) bool
}

type FixedCredentialPolicy struct {
	uploadCredential string
	deleteCredential string
}

var _ AccessPolicy = (*FixedCredentialPolicy)(nil)

func NewFixedCredentialPolicy(uploadCredential, deleteCredential string) *FixedCredentialPolicy {
	return &FixedCredentialPolicy{
		uploadCredential: uploadCredential,
		deleteCredential: deleteCredential,
	}
}

func (p *FixedCredentialPolicy) AuthorizesUpload(credential string) bool {
	return equal(credential, p.uploadCredential)
}

func (p *FixedCredentialPolicy) AuthorizesDelete(credential string) bool {
	return equal(credential, p.deleteCredential)
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
