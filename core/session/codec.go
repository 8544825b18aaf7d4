package session

import "encoding/json"

func marshalCredential(cred Credential) (string, error) {
	data, err := json.Marshal(cred)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalCredential(data string) (Credential, error) {
	var cred Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return Credential{}, err
	}
	return cred, nil
}
