/*
Package credential loads the per-portal account credentials of a water
accounting workspace.

A workspace is a directory holding two files:

	credential.yml        the secret key, stored verbatim
	config.yml-encrypted  a Fernet token wrapping a UTF-8 YAML document

The decrypted document is a mapping whose "accounts" section carries one
entry per known portal account (NASA, GLEAM, FTP_WA, FTP_WA_GUESS, MSWEP,
Copernicus, VITO), each a mapping of credential fields such as username and
password.

New performs the whole load at construction: it resolves the key, decrypts
and parses the document, merges it over a fresh copy of the default
configuration and checks that every known account is present. Any failure
aborts construction; there is no partially loaded Store.

Key material is provisioned, in order of precedence, from an explicit key
passed with WithKey, from the content of credential.yml, or, when that file
is empty, from PBKDF2-HMAC-SHA256 over a password.
*/
package credential
