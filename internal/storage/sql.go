package storage

const (
	initSchemaSQL = `
CREATE TABLE IF NOT EXISTS captures (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    command    TEXT      NOT NULL,
    params     TEXT
);

CREATE TABLE IF NOT EXISTS samples (
    capture_id  INTEGER NOT NULL REFERENCES captures (id) ON DELETE CASCADE,
    angle_index INTEGER NOT NULL,
    time_index  INTEGER NOT NULL,
    angle       REAL    NOT NULL,
    time        REAL    NOT NULL,
    strength    REAL    NOT NULL,
    PRIMARY KEY (capture_id, angle_index, time_index)
);

CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures (created_at);`

	insertCaptureSQL = `
INSERT INTO captures (
                      created_at,
                      command,
                      params)
VALUES (?, ?, ?)`

	selectCaptureSQL = `
SELECT 
    id, 
    created_at, 
    command, 
    params 
FROM captures 
WHERE 
    id = ?`

	selectCapturesSQL = `
SELECT 
    id, 
    created_at, 
    command, 
    params 
FROM captures
ORDER BY created_at, id`

	insertSampleSQL = `
INSERT INTO samples (capture_id,
                     angle_index,
                     time_index,
                     angle,
                     time,
                     strength)
VALUES `

	selectSamplesSQL = `
SELECT 
    angle_index,
    time_index,
    angle,
    time,
    strength
FROM samples
WHERE 
    capture_id = ?
ORDER BY angle_index, time_index`
)
