package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>Tunescope</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        code {
            background: #f4f4f4;
            padding: 2px 4px;
        }
    </style>
</head>
<body>
    <h1>Tunescope</h1>
    <p>Music catalog browser: %s artists, %s albums, %s songs.</p>
    <h2>Endpoints</h2>
    <ul>
        <li><code>GET /browse</code> — current screen and visible entities</li>
        <li><code>POST /intent</code> — user intents: search, genre, year, select_artist, select_album, select_song, back</li>
        <li><code>GET /events</code> — pending change notifications for the session</li>
        <li><code>GET /stats</code> — catalog totals</li>
    </ul>
    <p>Pass your session via the <code>X-Session-ID</code> header; responses echo it back.</p>
</body>
</html>`
