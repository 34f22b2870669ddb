package ledger

const (
	WriteReceiptQuery = `
		MERGE (r:Attestation {hypothesis_id: $hypothesis_id})
		SET r.content_hash = $content_hash,
			r.author = $author,
			r.created_at = $created_at,
			r.tx_id = $tx_id
		RETURN r.tx_id AS tx_id
	`

	GetReceiptQuery = `
		MATCH (r:Attestation {hypothesis_id: $hypothesis_id})
		RETURN r.hypothesis_id AS hypothesis_id,
			r.content_hash AS content_hash,
			r.author AS author,
			r.created_at AS created_at,
			r.tx_id AS tx_id
	`
)
