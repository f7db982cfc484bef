package taunt

import "time"

// Remote provider defaults
const (
	DefaultBaseURL     = "https://api.siliconflow.cn/v1"
	DefaultModel       = "deepseek-ai/DeepSeek-V3"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 500
	DefaultTimeout     = 10 * time.Second
	DefaultCacheTTL    = 10 * time.Minute

	chatCompletionsPath = "/chat/completions"
	maxErrorBodyBytes   = 512
	cacheKey            = "taunts"
)

// Provider source names used in logs and metrics
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceRemote = "remote"
)

// Prompts sent to the chat completion endpoint
const (
	systemPrompt = "You are a helpful assistant that generates JSON. Always respond with valid JSON only, no markdown formatting."

	userPrompt = `Generate short, punchy Chinese phrases (max 5 chars) for 4 types of annoying lawyers.
The tone should be exaggerated and funny.

1. BILLER (Greedy): Obsessed with money. e.g. "得加钱", "计时中".
2. PEDANT (Rule-obsessed): Uses obscure rules. e.g. "格式不对", "这里缺逗号".
3. STALLER (Lazy): Delays everything. e.g. "还在走流程", "等领导签字".
4. AGGRESSOR (Angry): Threatens litigation. e.g. "敢不给钱?", "马上起诉".

Return JSON with exactly this format:
{"BILLER": ["phrase1", "phrase2", "phrase3", "phrase4", "phrase5"], "PEDANT": [...], "STALLER": [...], "AGGRESSOR": [...]}`
)

// Log messages
const (
	LogMsgMissingCredential = "No taunt API key provided, using fallback taunts"
	LogMsgFetchFailed       = "Failed to generate taunts, using fallback taunts"
	LogMsgFetched           = "Taunt table fetched"
	LogMsgServedFromCache   = "Taunt table served from cache"
	LogMsgCachePurged       = "Taunt cache purged"
)
