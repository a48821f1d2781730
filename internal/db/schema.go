package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- LOCALITY TABLE (one row per post office)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS locality SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS pincode ON locality TYPE string ASSERT string::len($value) = 6;
    DEFINE FIELD IF NOT EXISTS office_name ON locality TYPE string;
    DEFINE FIELD IF NOT EXISTS district ON locality TYPE string;
    DEFINE FIELD IF NOT EXISTS state ON locality TYPE string DEFAULT 'Maharashtra';
    DEFINE FIELD IF NOT EXISTS office_type ON locality TYPE string DEFAULT 'S.O'
        ASSERT $value IN ['B.O', 'S.O', 'H.O'];
    DEFINE FIELD IF NOT EXISTS created ON locality TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS locality_pincode ON locality FIELDS pincode;
    DEFINE INDEX IF NOT EXISTS locality_district ON locality FIELDS district;
    -- A PIN code can serve several offices, but not the same office twice
    DEFINE INDEX IF NOT EXISTS locality_unique ON locality FIELDS pincode, office_name UNIQUE;

    DEFINE ANALYZER IF NOT EXISTS locality_analyzer TOKENIZERS class FILTERS lowercase, ascii;
    DEFINE INDEX IF NOT EXISTS locality_name_ft ON locality FIELDS office_name FULLTEXT ANALYZER locality_analyzer BM25;
    DEFINE INDEX IF NOT EXISTS locality_district_ft ON locality FIELDS district FULLTEXT ANALYZER locality_analyzer BM25;
`
