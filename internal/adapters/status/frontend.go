package status

import (
	"net/http"
)

// frontendHTML is the embedded HTML for the status page. It polls the
// stats and health endpoints and refreshes itself every five seconds.
const frontendHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Quadra - Status</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --error: #dc2626;
            --bg: #f8fafc;
            --card: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
            --radius: 8px;
            --shadow: 0 1px 3px rgba(0,0,0,0.1);
        }

        * {
            box-sizing: border-box;
            margin: 0;
            padding: 0;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.5;
            min-height: 100vh;
        }

        .container {
            max-width: 640px;
            margin: 0 auto;
            padding: 1rem;
        }

        header {
            display: flex;
            align-items: baseline;
            justify-content: space-between;
            padding: 1.5rem 0;
            border-bottom: 1px solid var(--border);
            margin-bottom: 1.5rem;
        }

        header h1 {
            font-size: 1.5rem;
            font-weight: 600;
        }

        .badge {
            font-size: 0.875rem;
            font-weight: 600;
            padding: 0.25rem 0.75rem;
            border-radius: 999px;
            color: #fff;
            background: var(--text-muted);
        }

        .badge.ok { background: var(--success); }
        .badge.bad { background: var(--error); }

        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(140px, 1fr));
            gap: 1rem;
            margin-bottom: 1.5rem;
        }

        .card {
            background: var(--card);
            border: 1px solid var(--border);
            border-radius: var(--radius);
            box-shadow: var(--shadow);
            padding: 1rem;
            text-align: center;
        }

        .card .value {
            font-size: 1.75rem;
            font-weight: 700;
            color: var(--primary);
        }

        .card .label {
            font-size: 0.8125rem;
            color: var(--text-muted);
        }

        footer {
            font-size: 0.8125rem;
            color: var(--text-muted);
            text-align: center;
            padding: 1rem 0;
        }

        footer a { color: var(--primary); }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Quadra</h1>
            <span class="badge" id="health">&hellip;</span>
        </header>
        <div class="grid" id="stats"></div>
        <footer>
            last run: <span id="last-run">never</span> &middot;
            <a href="/stats">stats</a> &middot;
            <a href="/health">health</a> &middot;
            <a href="/openapi.json">openapi</a>
        </footer>
    </div>
    <script>
        (function() {
            const fields = [
                ['runs', 'Runs'],
                ['qualified', 'Qualified'],
                ['split', 'Split'],
                ['skipped', 'Skipped'],
                ['failed', 'Failed'],
                ['quadrants_written', 'Quadrants written'],
                ['quadrants_existed', 'Quadrants existed']
            ];

            function card(label, value) {
                return '<div class="card"><div class="value">' + value +
                    '</div><div class="label">' + label + '</div></div>';
            }

            async function refresh() {
                try {
                    const res = await fetch('/stats');
                    const stats = await res.json();
                    document.getElementById('stats').innerHTML = fields
                        .map(([key, label]) => card(label, stats[key] || 0))
                        .join('');
                    document.getElementById('last-run').textContent =
                        stats.last_run ? new Date(stats.last_run).toLocaleString() : 'never';
                } catch (e) {
                    // Leave the previous snapshot in place
                }

                try {
                    const res = await fetch('/healthz');
                    const badge = document.getElementById('health');
                    badge.textContent = res.ok ? 'healthy' : 'unhealthy';
                    badge.className = 'badge ' + (res.ok ? 'ok' : 'bad');
                } catch (e) {
                    const badge = document.getElementById('health');
                    badge.textContent = 'unreachable';
                    badge.className = 'badge bad';
                }
            }

            refresh();
            setInterval(refresh, 5000);
        })();
    </script>
</body>
</html>`

// handleFrontend serves the status page.
func (s *Server) handleFrontend(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(frontendHTML))
}
