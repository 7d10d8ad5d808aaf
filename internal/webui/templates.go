package webui

// pageTemplates holds every page of the UI. The original served a single
// inlined stylesheet per page; keeping one template blob mirrors that while
// letting html/template handle escaping.
const pageTemplates = `
{{define "head"}}
<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>智能垃圾分类</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f0f4f8; padding: 20px; }
.container { max-width: 900px; margin: 0 auto; }
nav { margin-bottom: 20px; }
nav a { margin-right: 15px; color: #1e90ff; text-decoration: none; }
.card { background: #fff; border-radius: 8px; padding: 20px; margin-bottom: 15px; box-shadow: 0 1px 4px rgba(0,0,0,0.1); }
.badge { display: inline-block; color: #fff; border-radius: 4px; padding: 2px 10px; }
.bar { height: 18px; border-radius: 4px; margin: 4px 0; }
input[type=text] { padding: 8px; width: 60%; border: 1px solid #ccc; border-radius: 4px; }
button { padding: 8px 18px; border: 0; border-radius: 4px; background: #1e90ff; color: #fff; cursor: pointer; }
table { border-collapse: collapse; width: 100%; }
td, th { padding: 6px 10px; border-bottom: 1px solid #eee; text-align: left; }
img.preview { max-width: 240px; border-radius: 6px; margin: 10px 0; }
.hint { color: #888; font-size: 0.9em; }
</style>
</head>
<body>
<div class="container">
<nav>
<a href="/">首页</a>
<a href="/classify">文字分类</a>
<a href="/upload">图片分类</a>
<a href="/search">查询</a>
<a href="/stats">统计</a>
</nav>
{{end}}

{{define "foot"}}
</div>
</body>
</html>
{{end}}

{{define "page_home"}}
{{template "head" .}}
<h1>智能垃圾分类系统</h1>
<p class="hint">输入物品名称或上传图片，系统会判断它属于哪类垃圾。</p>
{{range .Cards}}
<div class="card">
<span class="badge" style="background:{{.Color}}">{{.Label}}</span>
<p>示例：{{range $i, $n := .Examples}}{{if $i}}、{{end}}{{$n}}{{end}}</p>
</div>
{{end}}
{{template "foot" .}}
{{end}}

{{define "page_classify"}}
{{template "head" .}}
<h1>文字分类</h1>
<div class="card">
<form method="post" action="/classify">
<input type="text" name="text" placeholder="例如：塑料瓶" value="{{.Query}}">
<button type="submit">分类</button>
</form>
</div>
{{if .NoMatch}}
<div class="card"><p>没有找到匹配的分类，请换个说法试试。</p></div>
{{end}}
{{if .Results}}
<div class="card">
<h3>分类结果</h3>
{{if .Uncertain}}<p class="hint">置信度较低，结果仅供参考。</p>{{end}}
{{range .Results}}
<p><span class="badge" style="background:{{.Color}}">{{.Label}}</span> {{.Percent}}</p>
{{end}}
</div>
{{end}}
{{if .Item}}
<div class="card">
<h3>{{.Item.Name}}</h3>
<p>{{.Item.Description}}</p>
<p><b>投放方法：</b>{{.Item.Disposal}}</p>
<p class="hint">{{.Item.Tip}}</p>
</div>
{{end}}
{{template "foot" .}}
{{end}}

{{define "page_search"}}
{{template "head" .}}
<h1>垃圾查询</h1>
<div class="card">
<form method="get" action="/search">
<input type="text" name="q" placeholder="物品名称或关键词" value="{{.Query}}">
<button type="submit">查询</button>
</form>
</div>
{{if .Item}}
<div class="card">
<h3>{{.Item.Name}} <span class="badge" style="background:{{.ItemColor}}">{{.ItemCategory}}</span></h3>
<p>{{.Item.Description}}</p>
<p><b>投放方法：</b>{{.Item.Disposal}}</p>
<p class="hint">{{.Item.Tip}}</p>
</div>
{{end}}
{{if .Related}}
<div class="card">
<h3>相关物品</h3>
<table>
<tr><th>名称</th><th>分类</th><th>投放方法</th></tr>
{{range .Related}}
<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.Disposal}}</td></tr>
{{end}}
</table>
</div>
{{else if .Query}}
{{if not .Item}}<div class="card"><p>没有找到相关物品。</p></div>{{end}}
{{end}}
{{template "foot" .}}
{{end}}

{{define "page_stats"}}
{{template "head" .}}
<h1>最近7天统计</h1>
{{if .Stats}}
<div class="card">
{{range .Stats}}
<p><span class="badge" style="background:{{.Color}}">{{.Label}}</span> {{.Count}} 次</p>
{{end}}
<p class="hint">共 {{.Total}} 次分类</p>
</div>
{{else}}
<div class="card"><p>暂无统计数据。</p></div>
{{end}}
{{if .Recent}}
<div class="card">
<h3>最近记录</h3>
<table>
<tr><th>物品</th><th>分类</th><th>置信度</th></tr>
{{range .Recent}}
<tr><td>{{.ItemName}}</td><td>{{.Category}}</td><td>{{printf "%.2f" .Confidence}}</td></tr>
{{end}}
</table>
</div>
{{end}}
{{template "foot" .}}
{{end}}

{{define "page_upload"}}
{{template "head" .}}
<h1>图片分类</h1>
<div class="card">
<form method="post" action="/upload" enctype="multipart/form-data">
<p><input type="file" name="image" accept="image/*"></p>
<p><input type="text" name="hint" placeholder="可选：文字提示，例如 塑料" value="{{.Hint}}"></p>
<button type="submit">上传并分类</button>
</form>
</div>
{{if .Error}}
<div class="card"><p>{{.Error}}</p></div>
{{end}}
{{if .DecodeFailed}}
<div class="card"><p class="hint">图片无法解析，以下结果仅基于文字提示。</p></div>
{{end}}
{{if .Results}}
<div class="card">
<h3>识别结果</h3>
{{if .Reused}}<p class="hint">检测到与之前上传过的图片相似，复用已有分析。</p>{{end}}
{{if .Uncertain}}<p class="hint">置信度较低，结果仅供参考。</p>{{end}}
{{range .Results}}
<p><span class="badge" style="background:{{.Color}}">{{.Label}}</span> {{.Percent}}</p>
{{end}}
</div>
{{end}}
{{if .Preview}}
<div class="card">
<img class="preview" src="{{.Preview}}" alt="上传的图片">
{{with .Features}}
<p class="hint">尺寸 {{.Width}}×{{.Height}}，亮度 {{printf "%.2f" .Brightness}}，对比度 {{printf "%.2f" .Contrast}}，指纹 {{.PerceptualHash}}</p>
{{end}}
</div>
{{end}}
{{template "foot" .}}
{{end}}
`
