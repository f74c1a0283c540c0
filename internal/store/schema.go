package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS goals (
    goal_id              TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    amount               REAL NOT NULL DEFAULT 0,
    rate_annual          REAL NOT NULL DEFAULT 0,
    target_date          TEXT NOT NULL,
    existing_capital     REAL NOT NULL DEFAULT 0,
    savings_type         TEXT NOT NULL DEFAULT 'fixed',
    monthly_increase     REAL NOT NULL DEFAULT 0,
    calculation_mode     TEXT NOT NULL DEFAULT 'standard',
    monthly_payment      REAL NOT NULL DEFAULT 0,
    initial_amount       REAL NOT NULL DEFAULT 0,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_bonuses (
    goal_id              TEXT NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    month                INTEGER NOT NULL,
    amount               REAL NOT NULL,
    description          TEXT,
    PRIMARY KEY (goal_id, seq)
);

CREATE TABLE IF NOT EXISTS settings (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    payload              TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_position ON goals(position);
`
