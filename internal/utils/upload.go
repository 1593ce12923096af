package utils

import (
    "crypto/rand"
    "encoding/hex"
    "io"
    "mime/multipart"
    "os"
    "path/filepath"
)

// SaveUpload copies a multipart file into dir under a random hex name that
// keeps the original extension, creating dir if needed.  It returns the
// stored file name.  Random names prevent collisions and stop clients from
// choosing paths.
func SaveUpload(fh *multipart.FileHeader, dir string) (string, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return "", err
    }
    name, err := randomHex(16)
    if err != nil {
        return "", err
    }
    if ext := filepath.Ext(fh.Filename); ext != "" {
        name += ext
    }

    src, err := fh.Open()
    if err != nil {
        return "", err
    }
    defer func() { _ = src.Close() }()

    dst, err := os.Create(filepath.Join(dir, name))
    if err != nil {
        return "", err
    }
    defer func() { _ = dst.Close() }()

    if _, err := io.Copy(dst, src); err != nil {
        return "", err
    }
    return name, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
