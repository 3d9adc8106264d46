package core

import (
	"errors"
	"strings"

	"github.com/smartystreets/gcs"

	"github.com/smartystreets/artifact-poller/contracts"
)

type CredentialParser struct {
	storage     contracts.FileReader
	environment contracts.Environment
}

func NewGoogleCredentialParser(storage contracts.FileReader, environment contracts.Environment) CredentialParser {
	return CredentialParser{storage: storage, environment: environment}
}

func (this CredentialParser) Parse() (gcs.Credentials, error) {
	googleCredentialsPath, found := this.environment.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	googleCredentialsPath = strings.TrimSpace(googleCredentialsPath)
	if !found || googleCredentialsPath == "" {
		return gcs.Credentials{}, errMissingGoogleCredentials
	}
	data, err := this.storage.ReadFile(googleCredentialsPath)
	if err != nil {
		return gcs.Credentials{}, err
	}
	return gcs.ParseCredentialsFromJSON(data)
}

var errMissingGoogleCredentials = errors.New("the GOOGLE_APPLICATION_CREDENTIALS is required for gcs:// state")
