package help

// SetupHint points users at the quick start when a process-level
// precondition (model artifact, datasets) is missing.
const SetupHint = "run 'pagelens quickstart' for setup instructions"

const QuickStartYAML = `# pagelens Quick Start

setup:
  model: "Trained classifier artifact at model.json (or set model_path in config)"
  datasets:
    - "data/page_features.csv (url, word_count, quality_label)"
    - "data/page_content.csv (url, body_text)"
  config: "Optional pagelens.yaml in the working directory; flags override it"

extract_modes:
  heuristic: "Ordered selector chain (default, fastest)"
  readability: "Article extraction with selector-chain fallback"
  auto: "Chain first, readability rescue on noisy pages"

commands:
  analyze_one: |
    pagelens analyze --url "https://example.com/post"

  analyze_many: |
    pagelens analyze --urls "https://a.example/x,https://b.example/y" --workers 4

  offline_html: |
    pagelens analyze --url "https://example.com/post" --html saved.html

  pick_fields: |
    pagelens analyze --url "https://example.com/post" --fields url,quality,similar_pages

  export_reports: |
    pagelens analyze --urls "https://a.example/x,https://b.example/y" --out results/

  corpus_overview: |
    pagelens corpus stats
    pagelens corpus check
    pagelens corpus keywords --top 20

  history: |
    pagelens history list --limit 10
    pagelens history show <analysis-id>
    pagelens history prune --older-than 720h

  api_server: |
    pagelens serve --addr :8080

output:
  formats: "json (default) or yaml via --format"
  failed_analyses: "word_count 0 plus a reason field, never a raw stack"
  export: "--out <dir> writes one JSON per page plus a summary-<date>.json index"

html_cache:
  - "Set fetch.cache_dir to reuse fetched HTML across runs (TTL: fetch.cache_ttl_hours)"
  - "Cached reports carry cached: true; --force-fetch bypasses the cache"

history_system:
  - "Completed analyses are recorded in SQLite (pagelens.db by default)"
  - "Disable per run with --no-history, or permanently with history.path: \"\""
  - "Similar pages are stored ranked per analysis; pruning cascades to them"

api_endpoints:
  health: "GET /health"
  analyze: "POST /api/analyze {url, top_n?, extract_mode?, force_fetch?}"
  corpus_stats: "GET /api/corpus/stats"
  corpus_keywords: "GET /api/corpus/keywords?top=25"
  history_list: "GET /api/history?limit=20"
  history_show: "GET /api/history/{id}"
  metrics: "GET /metrics (Prometheus)"

exit_codes:
  - "0: all analyses succeeded"
  - "1: usage error or partial failure"
  - "2: setup failure (model, datasets, database) or every URL failed"
`
