package server

import "html/template"

// The upload page. The run button is disabled while a request is
// outstanding and re-enabled in finally, so at most one optimize call can
// be triggered at a time from the page as well.
var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Listr</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 640px; color: #222; }
  label { display: block; margin-top: .8rem; }
  input, select, button { margin-top: .2rem; padding: .3rem; }
  button { margin-top: 1rem; padding: .4rem 1.2rem; }
  #status { margin-top: 1rem; color: #555; }
  .error { color: #a33; }
</style>
</head>
<body>
<h1>Listr</h1>
<p>Upload your eBird life list, pick dates, and get ranked hotspots for new lifers.</p>

<label>Life list CSV <input type="file" id="file" accept=".csv"></label>
<label>Start date <input type="date" id="start"></label>
<label>End date <input type="date" id="end"></label>
<label>Hotspots <input type="number" id="k" value="5" min="1"></label>
<label>County <select id="county"><option value="">All counties</option></select></label>
<button id="run" disabled>Find hotspots</button>
<div id="status"></div>

<script>
var status = document.getElementById('status');
var run = document.getElementById('run');

fetch('/api/counties').then(function (r) {
  if (!r.ok) { return []; }
  return r.json();
}).then(function (counties) {
  var sel = document.getElementById('county');
  counties.forEach(function (c) {
    var opt = document.createElement('option');
    opt.value = c;
    opt.textContent = c;
    sel.appendChild(opt);
  });
}).catch(function () { /* control stays unpopulated */ });

document.getElementById('file').addEventListener('change', function (ev) {
  var f = ev.target.files[0];
  if (!f) { return; }
  var form = new FormData();
  form.append('file', f);
  fetch('/api/lifelist', { method: 'POST', body: form })
    .then(function (r) { return r.json(); })
    .then(function (res) {
      if (res.detail) {
        status.textContent = res.detail;
        status.className = 'error';
        return;
      }
      status.textContent = res.species + ' species loaded';
      status.className = '';
      run.disabled = false;
    })
    .catch(function (err) {
      status.textContent = 'upload failed: ' + err;
      status.className = 'error';
    });
});

run.addEventListener('click', function () {
  run.disabled = true;
  status.textContent = 'optimizing...';
  status.className = '';
  fetch('/api/optimize', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({
      start_date: document.getElementById('start').value,
      end_date: document.getElementById('end').value,
      k: parseInt(document.getElementById('k').value, 10),
      county: document.getElementById('county').value
    })
  }).then(function (r) { return r.json(); })
    .then(function (res) {
      if (res.detail) {
        status.textContent = res.detail;
        status.className = 'error';
        return;
      }
      window.location = '/report';
    })
    .catch(function (err) {
      status.textContent = 'request failed: ' + err;
      status.className = 'error';
    })
    .finally(function () { run.disabled = false; });
});
</script>
</body>
</html>
`))
