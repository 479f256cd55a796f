// collect_test.go tests the hashing pipeline: digest correctness, plaintext
// wiping, the post-barrier sort invariant, and whole-pipeline cancellation.
package pwnedcheck

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

func TestHashSecretKnownVector(t *testing.T) {
	secret := []byte("hello")
	d := HashSecret(secret)
	if got := EncodeHex(d); got != helloHex {
		t.Errorf("expected %s, got %s", helloHex, got)
	}
}

func TestHashSecretWipesPlaintext(t *testing.T) {
	secret := []byte("hello")
	HashSecret(secret)
	for i, b := range secret {
		if b != 0 {
			t.Fatalf("secret byte %d not wiped: %#x", i, b)
		}
	}
}

func TestHashCredentialsSortedness(t *testing.T) {
	rng := newTestRNG(t)
	creds := make([]Credential, 500)
	for i := range creds {
		creds[i] = Credential{
			Label:  fmt.Sprintf("user%d@example.com", i),
			Secret: fmt.Appendf(nil, "password-%d", rng.Uint64()),
		}
	}

	for _, workers := range []int{1, 2, 7, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			local := make([]Credential, len(creds))
			for i := range creds {
				local[i] = Credential{
					Label:  creds[i].Label,
					Secret: append([]byte(nil), creds[i].Secret...),
				}
			}

			hashed, err := HashCredentials(context.Background(), local, workers)
			if err != nil {
				t.Fatal(err)
			}
			if len(hashed) != len(creds) {
				t.Fatalf("expected %d hashed records, got %d", len(creds), len(hashed))
			}
			for i := 1; i < len(hashed); i++ {
				if Compare(&hashed[i-1].Digest, &hashed[i].Digest) > 0 {
					t.Fatalf("records %d and %d out of order", i-1, i)
				}
			}
			for i := range local {
				for _, b := range local[i].Secret {
					if b != 0 {
						t.Fatalf("credential %d secret not wiped", i)
					}
				}
			}
		})
	}
}

func TestHashCredentialsPreservesDuplicateDigests(t *testing.T) {
	creds := []Credential{
		{Label: "a@x", Secret: []byte("password")},
		{Label: "b@y", Secret: []byte("password")},
		{Label: "c@z", Secret: []byte("other")},
	}
	hashed, err := HashCredentials(context.Background(), creds, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hashed) != 3 {
		t.Fatalf("expected 3 records, got %d", len(hashed))
	}
	want := sha1Of("password")
	dup := 0
	for _, h := range hashed {
		if h.Digest == want {
			dup++
		}
	}
	if dup != 2 {
		t.Errorf("expected 2 records with the shared digest, got %d", dup)
	}
}

func TestHashCredentialsEmpty(t *testing.T) {
	_, err := HashCredentials(context.Background(), nil, 4)
	if !errors.Is(err, pcerrors.ErrNoValidCredentials) {
		t.Errorf("expected ErrNoValidCredentials, got %v", err)
	}
}

func TestHashCredentialsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	creds := make([]Credential, 1000)
	for i := range creds {
		creds[i] = Credential{Label: "u", Secret: []byte("p")}
	}
	_, err := HashCredentials(ctx, creds, 4)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	// Cancellation discards partial output and still wipes the inputs.
	for i := range creds {
		if creds[i].Secret != nil {
			t.Fatalf("credential %d secret not released after cancellation", i)
		}
	}
}
