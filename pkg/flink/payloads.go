package flink

// Typed views of the Flink REST API payloads this server consumes. Fields
// absent from a response decode to their zero value; formatting code treats
// zero/nil as "not reported" where that distinction matters.

// ClusterOverview is the response of GET /overview.
type ClusterOverview struct {
	FlinkVersion   string `json:"flink-version,omitempty"`
	TaskManagers   int    `json:"taskmanagers"`
	SlotsTotal     int    `json:"slots-total"`
	SlotsAvailable int    `json:"slots-available"`
	JobsRunning    int    `json:"jobs-running"`
	JobsFinished   int    `json:"jobs-finished"`
	JobsCancelled  int    `json:"jobs-cancelled"`
	JobsFailed     int    `json:"jobs-failed"`
}

// JobsOverview is the response of GET /jobs/overview.
type JobsOverview struct {
	Jobs []JobSummary `json:"jobs"`
}

// JobSummary is one entry of the job overview listing.
type JobSummary struct {
	ID        string         `json:"jid"`
	Name      string         `json:"name"`
	State     string         `json:"state"`
	StartTime int64          `json:"start-time"`
	EndTime   int64          `json:"end-time"`
	Duration  int64          `json:"duration"`
	Tasks     map[string]int `json:"tasks,omitempty"`
}

// JobDetails is the response of GET /jobs/:jobid.
type JobDetails struct {
	ID             string           `json:"jid"`
	Name           string           `json:"name"`
	State          string           `json:"state"`
	IsStoppable    bool             `json:"isStoppable"`
	MaxParallelism int64            `json:"maxParallelism"`
	StartTime      int64            `json:"start-time"`
	EndTime        int64            `json:"end-time"`
	Duration       int64            `json:"duration"`
	Timestamps     map[string]int64 `json:"timestamps,omitempty"`
	Vertices       []JobVertex      `json:"vertices,omitempty"`
	StatusCounts   map[string]int   `json:"status-counts,omitempty"`
	Plan           *JobPlan         `json:"plan,omitempty"`
}

// JobVertex is one operator of a job.
type JobVertex struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         string         `json:"status"`
	Parallelism    int            `json:"parallelism"`
	MaxParallelism int            `json:"maxParallelism"`
	Duration       int64          `json:"duration"`
	Tasks          map[string]int `json:"tasks,omitempty"`
	Metrics        VertexMetrics  `json:"metrics"`
}

// VertexMetrics are the aggregated I/O metrics reported per vertex.
type VertexMetrics struct {
	ReadBytes               int64 `json:"read-bytes"`
	WriteBytes              int64 `json:"write-bytes"`
	ReadRecords             int64 `json:"read-records"`
	WriteRecords            int64 `json:"write-records"`
	AccumulatedBackpressure int64 `json:"accumulated-backpressured-time"`
	AccumulatedIdle         int64 `json:"accumulated-idle-time"`
}

// JobPlan is the execution plan attached to job details.
type JobPlan struct {
	Type  string     `json:"type,omitempty"`
	Nodes []PlanNode `json:"nodes,omitempty"`
}

// PlanNode is one node of the execution plan.
type PlanNode struct {
	ID          string      `json:"id"`
	Parallelism int         `json:"parallelism"`
	Description string      `json:"description"`
	Inputs      []PlanInput `json:"inputs,omitempty"`
}

// PlanInput describes an edge into a plan node.
type PlanInput struct {
	ID           string `json:"id"`
	ShipStrategy string `json:"ship_strategy"`
	Exchange     string `json:"exchange"`
}

// JobConfig is the response of GET /jobs/:jobid/config.
type JobConfig struct {
	ID              string          `json:"jid"`
	Name            string          `json:"name"`
	ExecutionConfig ExecutionConfig `json:"execution-config"`
}

// ExecutionConfig is the execution-config block of a job config.
type ExecutionConfig struct {
	ExecutionMode   string            `json:"execution-mode"`
	RestartStrategy string            `json:"restart-strategy"`
	JobParallelism  int               `json:"job-parallelism"`
	ObjectReuseMode bool              `json:"object-reuse-mode"`
	UserConfig      map[string]string `json:"user-config,omitempty"`
}

// JobExceptions is the response of GET /jobs/:jobid/exceptions.
type JobExceptions struct {
	RootException string           `json:"root-exception,omitempty"`
	Timestamp     int64            `json:"timestamp,omitempty"`
	AllExceptions []TaskException  `json:"all-exceptions,omitempty"`
	Truncated     bool             `json:"truncated"`
	History       ExceptionHistory `json:"exceptionHistory"`
}

// TaskException is one task-level exception record.
type TaskException struct {
	Exception     string `json:"exception"`
	Task          string `json:"task"`
	Location      string `json:"location"`
	Endpoint      string `json:"endpoint"`
	TaskManagerID string `json:"taskManagerId"`
	Timestamp     int64  `json:"timestamp"`
}

// ExceptionHistory holds the retained failure history of a job.
type ExceptionHistory struct {
	Entries   []ExceptionHistoryEntry `json:"entries,omitempty"`
	Truncated bool                    `json:"truncated"`
}

// ExceptionHistoryEntry is one retained failure with its concurrent failures.
type ExceptionHistoryEntry struct {
	ExceptionName string                  `json:"exceptionName"`
	TaskName      string                  `json:"taskName,omitempty"`
	Location      string                  `json:"location,omitempty"`
	Timestamp     int64                   `json:"timestamp"`
	Concurrent    []ExceptionHistoryEntry `json:"concurrentExceptions,omitempty"`
}

// TaskManagerList is the response of GET /taskmanagers.
type TaskManagerList struct {
	TaskManagers []TaskManagerSummary `json:"taskmanagers"`
}

// TaskManagerSummary describes one registered task manager.
type TaskManagerSummary struct {
	ID                     string        `json:"id"`
	Path                   string        `json:"path"`
	DataPort               int           `json:"dataPort"`
	JmxPort                int           `json:"jmxPort"`
	TimeSinceLastHeartbeat int64         `json:"timeSinceLastHeartbeat"`
	SlotsNumber            int           `json:"slotsNumber"`
	FreeSlots              int           `json:"freeSlots"`
	TotalResource          *Resource     `json:"totalResource,omitempty"`
	FreeResource           *Resource     `json:"freeResource,omitempty"`
	Hardware               *Hardware     `json:"hardware,omitempty"`
	MemoryConfiguration    *MemoryConfig `json:"memoryConfiguration,omitempty"`
}

// TaskManagerDetails is the response of GET /taskmanagers/:tmid.
type TaskManagerDetails struct {
	TaskManagerSummary
	AllocatedSlots []AllocatedSlot     `json:"allocatedSlots,omitempty"`
	Metrics        *TaskManagerMetrics `json:"metrics,omitempty"`
}

// AllocatedSlot describes one slot currently bound to a job.
type AllocatedSlot struct {
	JobID    string    `json:"jobId"`
	Resource *Resource `json:"resource,omitempty"`
}

// Resource is a configured or available resource profile. Memory values are
// reported in megabytes by the REST API.
type Resource struct {
	CPUCores          float64 `json:"cpuCores"`
	TaskHeapMemory    int64   `json:"taskHeapMemory"`
	TaskOffHeapMemory int64   `json:"taskOffHeapMemory"`
	ManagedMemory     int64   `json:"managedMemory"`
	NetworkMemory     int64   `json:"networkMemory"`
}

// Hardware describes the physical resources of a task manager host.
type Hardware struct {
	CPUCores       float64 `json:"cpuCores"`
	PhysicalMemory int64   `json:"physicalMemory"`
	FreeMemory     int64   `json:"freeMemory"`
	ManagedMemory  int64   `json:"managedMemory"`
}

// MemoryConfig is the effective memory layout of a task manager, in bytes.
type MemoryConfig struct {
	FrameworkHeap      int64 `json:"frameworkHeap"`
	FrameworkOffHeap   int64 `json:"frameworkOffHeap"`
	TaskHeap           int64 `json:"taskHeap"`
	TaskOffHeap        int64 `json:"taskOffHeap"`
	NetworkMemory      int64 `json:"networkMemory"`
	ManagedMemory      int64 `json:"managedMemory"`
	JvmMetaspace       int64 `json:"jvmMetaspace"`
	JvmOverhead        int64 `json:"jvmOverhead"`
	TotalFlinkMemory   int64 `json:"totalFlinkMemory"`
	TotalProcessMemory int64 `json:"totalProcessMemory"`
}

// TaskManagerMetrics are the live JVM metrics embedded in task manager details.
type TaskManagerMetrics struct {
	HeapUsed                 int64              `json:"heapUsed"`
	HeapCommitted            int64              `json:"heapCommitted"`
	HeapMax                  int64              `json:"heapMax"`
	NonHeapUsed              int64              `json:"nonHeapUsed"`
	NonHeapCommitted         int64              `json:"nonHeapCommitted"`
	NonHeapMax               int64              `json:"nonHeapMax"`
	DirectCount              int64              `json:"directCount"`
	DirectUsed               int64              `json:"directUsed"`
	DirectMax                int64              `json:"directMax"`
	MemorySegmentsAvailable  int64              `json:"memorySegmentsAvailable"`
	MemorySegmentsTotal      int64              `json:"memorySegmentsTotal"`
	NettyShuffleMemoryUsed   int64              `json:"nettyShuffleMemoryUsed"`
	NettyShuffleMemoryTotal  int64              `json:"nettyShuffleMemoryTotal"`
	NettyShuffleMemoryAvail  int64              `json:"nettyShuffleMemoryAvailable"`
	GarbageCollectors        []GarbageCollector `json:"garbageCollectors,omitempty"`
}

// GarbageCollector is one GC's cumulative statistics.
type GarbageCollector struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Time  int64  `json:"time"`
}

// MetricValue is one metric sample from a /metrics endpoint. The REST API
// reports values as strings with no fixed schema; listing calls omit Value.
type MetricValue struct {
	ID    string `json:"id"`
	Value string `json:"value,omitempty"`
}

// Backpressure is the response of GET /jobs/:jid/vertices/:vid/backpressure.
type Backpressure struct {
	Status       string                `json:"status"`
	Level        string                `json:"backpressureLevel"`
	EndTimestamp int64                 `json:"end-timestamp"`
	Subtasks     []SubtaskBackpressure `json:"subtasks,omitempty"`
}

// SubtaskBackpressure is the per-subtask backpressure breakdown.
type SubtaskBackpressure struct {
	Subtask   int     `json:"subtask"`
	Level     string  `json:"backpressureLevel"`
	Ratio     float64 `json:"ratio"`
	IdleRatio float64 `json:"idleRatio"`
	BusyRatio float64 `json:"busyRatio"`
}

// JarList is the response of GET /jars.
type JarList struct {
	Address string    `json:"address,omitempty"`
	Files   []JarFile `json:"files"`
}

// JarFile describes one uploaded JAR.
type JarFile struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Uploaded int64      `json:"uploaded"`
	Entries  []JarEntry `json:"entry,omitempty"`
}

// JarEntry is one entry class of an uploaded JAR.
type JarEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
