// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// metadataKeyToken is the metadata key holding the session token.
const metadataKeyToken = "token"

const (
	getMetadataValue = `SELECT value FROM metadata WHERE key = ?;`

	setMetadataValue = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	deleteMetadataValue = `DELETE FROM metadata WHERE key = ?;`
)

const (
	transcriptionsTable = "transcriptions"

	// upsertTranscriptionSuffix keeps the position of an existing row.
	upsertTranscriptionSuffix = `ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		document = excluded.document,
		updated_at = CURRENT_TIMESTAMP`

	// frontPosition places a new row before every stored row.
	frontPosition = `(SELECT COALESCE(MIN(position), 0) - 1 FROM transcriptions)`
)
