package contracts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FileFingerprint describes one published file. Only the MD5 checksum takes
// part in comparisons; SHA1 and size are carried along for the record.
type FileFingerprint struct {
	MD5       string
	SHA1      string
	SizeBytes uint64
}

func (this FileFingerprint) Matches(that FileFingerprint) bool {
	return this.MD5 == that.MD5
}

type fingerprintDocument struct {
	Size      fileSize          `json:"size"`
	Checksums checksumsDocument `json:"checksums"`
}

type checksumsDocument struct {
	SHA1 string `json:"sha1"`
	MD5  string `json:"md5"`
}

func (this FileFingerprint) MarshalJSON() ([]byte, error) {
	return json.Marshal(fingerprintDocument{
		Size:      fileSize(this.SizeBytes),
		Checksums: checksumsDocument{SHA1: this.SHA1, MD5: this.MD5},
	})
}

func (this *FileFingerprint) UnmarshalJSON(raw []byte) error {
	var document fingerprintDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}
	*this = FileFingerprint{
		MD5:       document.Checksums.MD5,
		SHA1:      document.Checksums.SHA1,
		SizeBytes: uint64(document.Size),
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// fileSize is written as a number but also accepts the quoted form the
// storage API reports ("size": "1024").
type fileSize uint64

func (this fileSize) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(this), 10)), nil
}

func (this *fileSize) UnmarshalJSON(raw []byte) error {
	text := strings.Trim(string(raw), `"`)
	if text == "" || text == "null" {
		*this = 0
		return nil
	}
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid file size %s: %w", raw, err)
	}
	*this = fileSize(value)
	return nil
}
