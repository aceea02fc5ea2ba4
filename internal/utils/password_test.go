package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("front-desk-9", 4)
    if err != nil {
        t.Fatalf("hash: %v", err)
    }
    if hash == "front-desk-9" {
        t.Fatal("hash must not equal the plain password")
    }
    if !VerifyPassword(hash, "front-desk-9") {
        t.Fatal("correct password rejected")
    }
    if VerifyPassword(hash, "front-desk-8") {
        t.Fatal("wrong password accepted")
    }
}
