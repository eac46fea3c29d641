package templates

const layout = `<!DOCTYPE html>
<html lang="pt-BR" class="{{if .State.DarkMode}}dark{{end}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Fiscal Cidadão</title>
  <script src="https://cdn.tailwindcss.com"></script>
  <script>tailwind.config = { darkMode: 'class' }</script>
</head>
<body class="{{if .State.DarkMode}}bg-gray-900 text-gray-100{{else}}bg-gray-50 text-gray-900{{end}} min-h-screen pb-24">
  {{if not (viewIs .State.View "perfil")}}{{template "topbar" .}}{{end}}
  <main class="max-w-md mx-auto p-4 space-y-4" data-view="{{.State.View}}">
    {{if viewIs .State.View "dashboard"}}{{template "dashboard" .}}
    {{else if viewIs .State.View "nova-multa"}}{{template "nova-multa" .}}
    {{else if viewIs .State.View "carteira"}}{{template "carteira" .}}
    {{else if viewIs .State.View "historico"}}{{template "historico" .}}
    {{else if viewIs .State.View "ranking"}}{{template "ranking" .}}
    {{else if viewIs .State.View "perfil"}}{{template "perfil" .}}
    {{end}}
  </main>
  {{if .Selected}}{{template "detail" .}}{{end}}
  {{with .State.Notification}}{{template "toast" .}}{{end}}
  {{template "bottomnav" .}}
  <script>
    (function () {
      var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
      var ws = new WebSocket(proto + location.host + '/ws');
      ws.onmessage = function () {
        var el = document.activeElement;
        if (el && (el.tagName === 'INPUT' || el.tagName === 'SELECT')) { return; }
        location.reload();
      };
    })();
  </script>
</body>
</html>`

var sources = map[string]string{
	"topbar": `<header class="sticky top-0 z-10 {{if .State.DarkMode}}bg-gray-800{{else}}bg-white{{end}} shadow">
  <div class="max-w-md mx-auto flex items-center justify-between p-4">
    <div>
      <h1 class="font-bold text-lg">Fiscal Cidadão</h1>
      <span class="text-xs px-2 py-0.5 rounded-full {{.Standing.Current.Background}} {{.Standing.Current.Color}}">{{.Standing.Current.Name}}</span>
    </div>
    <a href="/view/carteira" class="rounded-full bg-green-600 text-white px-3 py-1 text-sm font-semibold">{{money .State.Balance}}</a>
  </div>
</header>`,

	"bottomnav": `<nav class="fixed bottom-0 inset-x-0 {{if .State.DarkMode}}bg-gray-800{{else}}bg-white{{end}} border-t">
  <ul class="max-w-md mx-auto flex justify-around py-2 text-xs">
    {{$active := .State.View}}
    {{range nav}}<li><a href="/view/{{.}}" class="{{if is . $active}}text-blue-600 font-bold{{else}}text-gray-500{{end}}">{{.Label}}</a></li>{{end}}
  </ul>
</nav>`,

	"toast": `<div role="status" class="fixed top-20 inset-x-4 max-w-md mx-auto rounded-lg p-3 text-white shadow-lg {{toastClass .Kind}}">{{.Message}}</div>`,

	"reportrow": `<a href="/reports/{{.ID}}" class="block rounded-lg p-3 shadow-sm border">
  <div class="flex justify-between">
    <span class="font-mono font-semibold">{{.Plate}}</span>
    <span class="text-xs px-2 py-0.5 rounded-full {{statusClass .Status}}">{{.Status}}</span>
  </div>
  <p class="text-sm">{{.ViolationName}}</p>
  <p class="text-xs text-gray-500">{{.Location}} · {{.DateCreated}}</p>
</a>`,

	"dashboard": `<section class="rounded-xl p-4 bg-blue-600 text-white">
  <p class="text-sm">Nível {{.Standing.Level}} · {{.Standing.Experience}} XP</p>
  {{if .Standing.MaxLevel}}<p class="text-xs mt-2">Nível máximo alcançado!</p>
  {{else}}<div class="h-2 rounded-full bg-blue-900 mt-2"><div class="h-2 rounded-full bg-white" style="{{width .Standing.Progress}}"></div></div>
  <p class="text-xs mt-2">Faltam {{.Standing.Remaining}} XP para {{.Standing.Next.Name}}</p>{{end}}
</section>
<section class="grid grid-cols-2 gap-4">
  <div class="rounded-xl p-4 shadow"><p class="text-2xl font-bold">{{.Weekly.Infractions}}</p><p class="text-xs">Infrações esta semana</p></div>
  <div class="rounded-xl p-4 shadow"><p class="text-2xl font-bold">{{.Weekly.Points}}</p><p class="text-xs">Pontos aplicados</p></div>
</section>
<section class="space-y-2">
  <div class="flex justify-between items-center">
    <h2 class="font-semibold">Atividade Recente</h2>
    <a href="/view/historico" class="text-sm text-blue-600">Ver tudo</a>
  </div>
  {{range .Recent}}{{template "reportrow" .}}{{else}}<p class="text-sm text-gray-500">Nenhuma denúncia ainda.</p>{{end}}
</section>`,

	"nova-multa": `<form method="post" action="/draft" enctype="multipart/form-data" class="space-y-4">
  <section class="rounded-xl overflow-hidden shadow">
    {{if .MapURL}}<iframe title="Mapa" class="w-full h-40" src="{{.MapURL}}"></iframe>{{else}}<div class="w-full h-40 bg-gray-200"></div>{{end}}
    <div class="flex items-center justify-between p-3">
      <span class="text-sm">{{if .State.Draft.Location}}{{.State.Draft.Location}}{{else}}Local não identificado{{end}}</span>
      <button type="submit" formaction="/draft/locate" class="text-sm text-blue-600" {{if .State.Draft.Locating}}disabled{{end}}>GPS</button>
    </div>
  </section>
  <label class="block">
    <span class="text-sm font-semibold">Placa do veículo</span>
    <input name="plate" value="{{.State.Draft.Plate}}" placeholder="ABC-1234" class="w-full rounded-lg border p-2 font-mono uppercase text-black" {{if .State.Draft.Submitting}}disabled{{end}}>
  </label>
  <fieldset class="space-y-2">
    <legend class="text-sm font-semibold">Tipo de infração</legend>
    {{$selected := .State.Draft.ViolationTypeID}}{{$busy := .State.Draft.Submitting}}
    {{range .Violations}}<label class="flex items-center justify-between rounded-lg border p-2">
      <span><input type="radio" name="violation" value="{{.ID}}" {{if eq .ID $selected}}checked{{end}} {{if $busy}}disabled{{end}}> {{.Name}}</span>
      <span class="text-xs text-right"><span class="block text-green-600">+{{money .Bonus}}</span><span class="text-gray-500">{{.PointPenalty}} Pts • {{.Severity}}</span></span>
    </label>{{end}}
  </fieldset>
  <section class="space-y-2">
    <span class="text-sm font-semibold">Provas</span>
    <div class="grid grid-cols-3 gap-2">
      {{range $i, $e := .State.Draft.Evidence}}<div class="relative rounded-lg overflow-hidden border h-24">
        {{if $e.IsVideo}}<video src="{{$e.URL}}" class="w-full h-full object-cover"></video>{{else}}<img src="{{$e.ThumbnailURL}}" alt="{{$e.FileName}}" class="w-full h-full object-cover">{{end}}
        <button type="submit" formaction="/draft/evidence/{{$i}}/remove" class="absolute top-1 right-1 rounded-full bg-red-600 text-white w-6 h-6">×</button>
      </div>{{end}}
    </div>
    <input type="file" name="evidence" accept="image/*,video/*" multiple {{if .State.Draft.Submitting}}disabled{{end}}>
  </section>
  <div class="flex gap-2">
    <button type="submit" class="flex-1 rounded-lg border p-3">Salvar</button>
    <button type="submit" formaction="/draft/submit" class="flex-1 rounded-lg bg-blue-600 text-white p-3 font-semibold" {{if .State.Draft.Submitting}}disabled{{end}}>
      {{if .State.Draft.Submitting}}Processando...{{else}}Enviar Denúncia{{end}}
    </button>
  </div>
</form>`,

	"carteira": `<section class="rounded-xl p-6 bg-green-600 text-white text-center">
  <p class="text-sm">Saldo disponível</p>
  <p class="text-3xl font-bold">{{money .Wallet.Balance}}</p>
  <button type="button" class="mt-4 rounded-lg bg-white text-green-700 px-4 py-2 font-semibold">Sacar Pix</button>
</section>
<section class="space-y-2">
  <h2 class="font-semibold">Extrato</h2>
  {{range .Wallet.Statement}}<div class="flex justify-between rounded-lg border p-3">
    <div><p class="text-sm">{{.ViolationName}}</p><p class="text-xs text-gray-500">{{.DateCreated}}</p></div>
    <span class="text-green-600 font-semibold">+{{money .Bonus}}</span>
  </div>{{else}}<p class="text-sm text-gray-500">Nenhum crédito ainda.</p>{{end}}
</section>`,

	"historico": `<h2 class="font-semibold">Histórico</h2>
<section class="space-y-2">{{range .State.Reports}}{{template "reportrow" .}}{{end}}</section>`,

	"ranking": `<h2 class="font-semibold">Ranking Mensal</h2>
<ol class="space-y-2">
  {{range .Leaderboard}}<li class="flex items-center justify-between rounded-lg border p-3 {{if .IsYou}}border-blue-600{{end}}">
    <span><span class="font-bold">{{.Position}}º</span> {{.AgentName}}</span>
    <span class="text-right text-xs"><span class="block">{{.Experience}} XP</span><span class="text-green-600">{{money .Earnings}}</span></span>
  </li>{{end}}
</ol>`,

	"perfil": `<section class="text-center space-y-1 pt-8">
  <div class="mx-auto w-20 h-20 rounded-full bg-blue-600 text-white flex items-center justify-center text-2xl font-bold">AS</div>
  <h2 class="text-xl font-bold">{{.Profile.AgentName}}</h2>
  <p class="text-sm text-gray-500">{{.Profile.Registration}}</p>
  <p class="text-sm"><span class="{{.Standing.Current.Color}}">{{.Standing.Current.Name}}</span> · Nível {{.Standing.Level}}</p>
</section>
<section class="rounded-xl border divide-y">
  <form method="post" action="/theme" class="flex items-center justify-between p-3">
    <span>Modo escuro</span>
    <button type="submit" class="rounded-full px-3 py-1 text-sm {{if .Profile.DarkMode}}bg-blue-600 text-white{{else}}bg-gray-200 text-black{{end}}">{{if .Profile.DarkMode}}Ligado{{else}}Desligado{{end}}</button>
  </form>
  <div class="flex justify-between p-3 text-sm"><span>Versão</span><span>{{.Profile.AppVersion}}</span></div>
</section>`,

	"detail": `{{$dark := .State.DarkMode}}{{with .Selected}}<div class="fixed inset-0 z-20 bg-black/50 flex items-end">
  <div class="w-full max-w-md mx-auto rounded-t-2xl {{if $dark}}bg-slate-800 text-white{{else}}bg-white text-gray-800{{end}} p-4 space-y-3">
    <div class="flex justify-between">
      <h3 class="font-bold">Denúncia #{{.ID}}</h3>
      <form method="post" action="/reports/close"><button type="submit" aria-label="Fechar">×</button></form>
    </div>
    <p class="font-mono text-lg">{{.Plate}}</p>
    <p>{{.ViolationName}}</p>
    <p class="text-sm text-gray-500">{{if .Location}}{{.Location}}{{else}}Localização não disponível{{end}} · {{.DateCreated}}</p>
    <span class="text-xs px-2 py-0.5 rounded-full {{statusClass .Status}}">{{.Status}}</span>
    <div class="flex justify-between text-sm">
      <span>{{.PointPenalty}} pontos na CNH</span>
      <span class="text-green-600">+{{money .Bonus}} · +{{.Experience}} XP</span>
    </div>
    {{if .Evidence}}<div class="grid grid-cols-3 gap-2">{{range .Evidence}}<a href="{{.URL}}" class="block h-20 rounded overflow-hidden border">
      {{if .IsVideo}}<video src="{{.URL}}" class="w-full h-full object-cover"></video>{{else}}<img src="{{.ThumbnailURL}}" alt="{{.FileName}}" class="w-full h-full object-cover">{{end}}
    </a>{{end}}</div>{{end}}
  </div>
</div>{{end}}`,
}
